package mock

import (
	"context"

	"github.com/henfal/mdubot"
)

var _ mdubot.ProgramService = (*ProgramService)(nil)

// ProgramService is a mock implementation of mdubot.ProgramService.
type ProgramService struct {
	CreateProgramFn        func(ctx context.Context, program *mdubot.Program) error
	FindProgramByIDFn      func(ctx context.Context, id string) (*mdubot.Program, error)
	FindProgramsFn         func(ctx context.Context, filter mdubot.ProgramFilter) ([]*mdubot.Program, error)
	DeleteProgramFn        func(ctx context.Context, id string) error
	DeleteProgramsByCodeFn func(ctx context.Context, code string) error
}

func (s *ProgramService) CreateProgram(ctx context.Context, program *mdubot.Program) error {
	return s.CreateProgramFn(ctx, program)
}

func (s *ProgramService) FindProgramByID(ctx context.Context, id string) (*mdubot.Program, error) {
	return s.FindProgramByIDFn(ctx, id)
}

func (s *ProgramService) FindPrograms(ctx context.Context, filter mdubot.ProgramFilter) ([]*mdubot.Program, error) {
	return s.FindProgramsFn(ctx, filter)
}

func (s *ProgramService) DeleteProgram(ctx context.Context, id string) error {
	return s.DeleteProgramFn(ctx, id)
}

func (s *ProgramService) DeleteProgramsByCode(ctx context.Context, code string) error {
	return s.DeleteProgramsByCodeFn(ctx, code)
}
