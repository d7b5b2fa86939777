package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/henfal/mdubot"
)

// Compile-time interface verification.
var _ mdubot.CourseService = (*CourseService)(nil)

// CourseService implements mdubot.CourseService using SQLite.
type CourseService struct {
	db *DB
}

// NewCourseService creates a new CourseService.
func NewCourseService(db *DB) *CourseService {
	return &CourseService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// CreateCourse creates a new course version.
func (s *CourseService) CreateCourse(ctx context.Context, course *mdubot.Course) error {
	if err := course.Validate(); err != nil {
		return err
	}

	course.ID = uuid.New().String()
	course.CrawledAt = time.Now().UTC()
	if course.ContentHash == "" {
		course.ContentHash = hashContent(mdubot.FormatCourse(course))
	}

	details, err := marshalMap(course.Details)
	if err != nil {
		return err
	}
	sections, err := marshalMap(course.Sections)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO courses (id, source_id, code, name, active, valid_from, url, details, sections, content_hash, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, course.ID, course.SourceID, course.Code, course.Name, course.Active,
		formatTime(course.ValidFrom), course.URL, details, sections,
		course.ContentHash, formatTime(course.CrawledAt))

	return err
}

// FindCourseByID retrieves a course by ID.
func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*mdubot.Course, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_id, code, name, active, valid_from, url, details, sections, content_hash, crawled_at
		FROM courses
		WHERE id = ?
	`, id)

	course, err := scanCourse(row.Scan)
	if err == sql.ErrNoRows {
		return nil, mdubot.Errorf(mdubot.ENOTFOUND, "course not found")
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}

// FindCourses retrieves courses matching the filter, newest first.
func (s *CourseService) FindCourses(ctx context.Context, filter mdubot.CourseFilter) ([]*mdubot.Course, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_id, code, name, active, valid_from, url, details, sections, content_hash, crawled_at FROM courses WHERE 1=1`)

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
		// RFC3339 strings compare lexicographically, so MAX() finds the
		// newest valid_from per code.
		query.WriteString(` AND code != '' AND valid_from = (
			SELECT MAX(c2.valid_from) FROM courses c2 WHERE c2.code = courses.code
		)`)
	}

	query.WriteString(" ORDER BY valid_from DESC, code ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*mdubot.Course
	for rows.Next() {
		course, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}

	return courses, rows.Err()
}

// DeleteCourse permanently removes a course version and its chunks.
func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return mdubot.Errorf(mdubot.ENOTFOUND, "course not found")
	}

	_, err = s.db.ExecContext(ctx, "DELETE FROM chunks WHERE owner_id = ?", id)
	return err
}

// DeleteCoursesByCode removes all versions of a course code and their chunks.
func (s *CourseService) DeleteCoursesByCode(ctx context.Context, code string) error {
	code = strings.ToLower(code)
	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM chunks WHERE owner_id IN (SELECT id FROM courses WHERE code = ?)
	`, code); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM courses WHERE code = ?", code)
	return err
}

// scanCourse scans a course row using the provided scan function.
func scanCourse(scan func(dest ...any) error) (*mdubot.Course, error) {
	var course mdubot.Course
	var validFrom, details, sections, crawledAt string

	if err := scan(&course.ID, &course.SourceID, &course.Code, &course.Name,
		&course.Active, &validFrom, &course.URL, &details, &sections,
		&course.ContentHash, &crawledAt); err != nil {
		return nil, err
	}

	var err error
	if course.ValidFrom, err = parseTime(validFrom, "valid_from"); err != nil {
		return nil, err
	}
	if course.CrawledAt, err = parseTime(crawledAt, "crawled_at"); err != nil {
		return nil, err
	}
	if course.Details, err = unmarshalMap(details, "details"); err != nil {
		return nil, err
	}
	if course.Sections, err = unmarshalMap(sections, "sections"); err != nil {
		return nil, err
	}

	return &course, nil
}
