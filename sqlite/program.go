package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/henfal/mdubot"
)

// Compile-time interface verification.
var _ mdubot.ProgramService = (*ProgramService)(nil)

// ProgramService implements mdubot.ProgramService using SQLite.
type ProgramService struct {
	db *DB
}

// NewProgramService creates a new ProgramService.
func NewProgramService(db *DB) *ProgramService {
	return &ProgramService{db: db}
}

// CreateProgram creates a new program version.
func (s *ProgramService) CreateProgram(ctx context.Context, program *mdubot.Program) error {
	if err := program.Validate(); err != nil {
		return err
	}

	program.ID = uuid.New().String()
	program.CrawledAt = time.Now().UTC()
	if program.ContentHash == "" {
		program.ContentHash = hashContent(mdubot.FormatProgram(program))
	}

	languages, err := marshalStrings(program.Languages)
	if err != nil {
		return err
	}
	details, err := marshalMap(program.Details)
	if err != nil {
		return err
	}
	sections, err := marshalMap(program.Sections)
	if err != nil {
		return err
	}
	goals, err := marshalMap(program.Goals)
	if err != nil {
		return err
	}
	years, err := marshalMap(program.Years)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO programs (id, source_id, code, name, active, valid_from, url, languages, details, sections, goals, years, content_hash, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, program.ID, program.SourceID, program.Code, program.Name, program.Active,
		formatTime(program.ValidFrom), program.URL, languages, details, sections,
		goals, years, program.ContentHash, formatTime(program.CrawledAt))

	return err
}

// FindProgramByID retrieves a program by ID.
func (s *ProgramService) FindProgramByID(ctx context.Context, id string) (*mdubot.Program, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_id, code, name, active, valid_from, url, languages, details, sections, goals, years, content_hash, crawled_at
		FROM programs
		WHERE id = ?
	`, id)

	program, err := scanProgram(row.Scan)
	if err == sql.ErrNoRows {
		return nil, mdubot.Errorf(mdubot.ENOTFOUND, "program not found")
	}
	if err != nil {
		return nil, err
	}
	return program, nil
}

// FindPrograms retrieves programs matching the filter, newest first.
func (s *ProgramService) FindPrograms(ctx context.Context, filter mdubot.ProgramFilter) ([]*mdubot.Program, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_id, code, name, active, valid_from, url, languages, details, sections, goals, years, content_hash, crawled_at FROM programs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Code != nil {
		query.WriteString(" AND code = ?")
		args = append(args, strings.ToLower(*filter.Code))
	}
	if filter.SourceID != nil {
		query.WriteString(" AND source_id = ?")
		args = append(args, *filter.SourceID)
	}
	if filter.NewestOnly {
		query.WriteString(` AND code != '' AND valid_from = (
			SELECT MAX(p2.valid_from) FROM programs p2 WHERE p2.code = programs.code
		)`)
	}

	query.WriteString(" ORDER BY valid_from DESC, code ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*mdubot.Program
	for rows.Next() {
		program, err := scanProgram(rows.Scan)
		if err != nil {
			return nil, err
		}
		programs = append(programs, program)
	}

	return programs, rows.Err()
}

// DeleteProgram permanently removes a program version and its chunks.
func (s *ProgramService) DeleteProgram(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM programs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return mdubot.Errorf(mdubot.ENOTFOUND, "program not found")
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM chunks WHERE owner_id = ?", id)
	return err
}

// DeleteProgramsByCode removes all versions of a program code and their chunks.
func (s *ProgramService) DeleteProgramsByCode(ctx context.Context, code string) error {
	code = strings.ToLower(code)
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM chunks WHERE owner_id IN (SELECT id FROM programs WHERE code = ?)
	`, code); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM programs WHERE code = ?", code)
	return err
}

// scanProgram scans a program row using the provided scan function.
func scanProgram(scan func(dest ...any) error) (*mdubot.Program, error) {
	var program mdubot.Program
	var validFrom, languages, details, sections, goals, years, crawledAt string

	if err := scan(&program.ID, &program.SourceID, &program.Code, &program.Name,
		&program.Active, &validFrom, &program.URL, &languages, &details,
		&sections, &goals, &years, &program.ContentHash, &crawledAt); err != nil {
		return nil, err
	}

	var err error
	if program.ValidFrom, err = parseTime(validFrom, "valid_from"); err != nil {
		return nil, err
	}
	if program.CrawledAt, err = parseTime(crawledAt, "crawled_at"); err != nil {
		return nil, err
	}
	if program.Languages, err = unmarshalStrings(languages, "languages"); err != nil {
		return nil, err
	}
	if program.Details, err = unmarshalMap(details, "details"); err != nil {
		return nil, err
	}
	if program.Sections, err = unmarshalMap(sections, "sections"); err != nil {
		return nil, err
	}
	if program.Goals, err = unmarshalMap(goals, "goals"); err != nil {
		return nil, err
	}
	if program.Years, err = unmarshalMap(years, "years"); err != nil {
		return nil, err
	}

	return &program, nil
}
