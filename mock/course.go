package mock

import (
	"context"

	"github.com/henfal/mdubot"
)

var _ mdubot.CourseService = (*CourseService)(nil)

// CourseService is a mock implementation of mdubot.CourseService.
type CourseService struct {
	CreateCourseFn        func(ctx context.Context, course *mdubot.Course) error
	FindCourseByIDFn      func(ctx context.Context, id string) (*mdubot.Course, error)
	FindCoursesFn         func(ctx context.Context, filter mdubot.CourseFilter) ([]*mdubot.Course, error)
	DeleteCourseFn        func(ctx context.Context, id string) error
	DeleteCoursesByCodeFn func(ctx context.Context, code string) error
}

func (s *CourseService) CreateCourse(ctx context.Context, course *mdubot.Course) error {
	return s.CreateCourseFn(ctx, course)
}

func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*mdubot.Course, error) {
	return s.FindCourseByIDFn(ctx, id)
}

func (s *CourseService) FindCourses(ctx context.Context, filter mdubot.CourseFilter) ([]*mdubot.Course, error) {
	return s.FindCoursesFn(ctx, filter)
}

func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	return s.DeleteCourseFn(ctx, id)
}

func (s *CourseService) DeleteCoursesByCode(ctx context.Context, code string) error {
	return s.DeleteCoursesByCodeFn(ctx, code)
}
