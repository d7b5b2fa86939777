package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCourse(sourceID int, code string, validFrom time.Time) *mdubot.Course {
	return &mdubot.Course{
		SourceID:  sourceID,
		Code:      code,
		Name:      "Programmering",
		Active:    true,
		ValidFrom: validFrom,
		URL:       "https://www.mdu.se/utbildning/kursplan?id=25000",
		Details: map[string]string{
			"högskolepoäng": "7.5",
			"utbildningsnivå": "Grundnivå",
		},
		Sections: map[string]string{
			"innehåll": "Grundläggande programmering.",
		},
	}
}

func TestCourseService_CreateCourse(t *testing.T) {
	t.Parallel()

	t.Run("creates course with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		ctx := context.Background()

		course := newTestCourse(25000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))

		require.NoError(t, svc.CreateCourse(ctx, course))

		assert.NotEmpty(t, course.ID, "ID should be generated")
		assert.NotEmpty(t, course.ContentHash, "ContentHash should be generated")
		assert.False(t, course.CrawledAt.IsZero(), "CrawledAt should be set")
	})

	t.Run("content hash is the 16-digit xxhash hex of the embed text", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		ctx := context.Background()

		course := newTestCourse(25000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, svc.CreateCourse(ctx, course))

		want := fmt.Sprintf("%016x", xxhash.Sum64String(mdubot.FormatCourse(course)))
		assert.Equal(t, want, course.ContentHash)
	})

	t.Run("returns error for invalid course", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)

		err := svc.CreateCourse(context.Background(), &mdubot.Course{})
		require.Error(t, err)
		assert.Equal(t, mdubot.EINVALID, mdubot.ErrorCode(err))
	})

	t.Run("round-trips details and sections", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		ctx := context.Background()

		course := newTestCourse(25000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, svc.CreateCourse(ctx, course))

		found, err := svc.FindCourseByID(ctx, course.ID)
		require.NoError(t, err)
		assert.Equal(t, course.Details, found.Details)
		assert.Equal(t, course.Sections, found.Sections)
		assert.True(t, found.ValidFrom.Equal(course.ValidFrom))
		assert.True(t, found.Active)
	})
}

func TestCourseService_FindCourseByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)

		_, err := svc.FindCourseByID(context.Background(), "nope")
		require.Error(t, err)
		assert.Equal(t, mdubot.ENOTFOUND, mdubot.ErrorCode(err))
	})
}

func TestCourseService_FindCourses(t *testing.T) {
	t.Parallel()

	t.Run("filters by code case-insensitively", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		ctx := context.Background()

		require.NoError(t, svc.CreateCourse(ctx, newTestCourse(25000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))))
		require.NoError(t, svc.CreateCourse(ctx, newTestCourse(25001, "mat101", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))))

		code := "DVA117"
		found, err := svc.FindCourses(ctx, mdubot.CourseFilter{Code: &code})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "dva117", found[0].Code)
	})

	t.Run("newest only keeps the latest version per code", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		ctx := context.Background()

		old := newTestCourse(25000, "dva117", time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC))
		newer := newTestCourse(27000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))
		other := newTestCourse(25500, "mat101", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, svc.CreateCourse(ctx, old))
		require.NoError(t, svc.CreateCourse(ctx, newer))
		require.NoError(t, svc.CreateCourse(ctx, other))

		found, err := svc.FindCourses(ctx, mdubot.CourseFilter{NewestOnly: true})
		require.NoError(t, err)
		require.Len(t, found, 2)

		bySourceID := map[string]int{}
		for _, c := range found {
			bySourceID[c.Code] = c.SourceID
		}
		assert.Equal(t, 27000, bySourceID["dva117"])
		assert.Equal(t, 25500, bySourceID["mat101"])
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			course := newTestCourse(25000+i, "dva117", time.Date(2019+i, 8, 1, 0, 0, 0, 0, time.UTC))
			require.NoError(t, svc.CreateCourse(ctx, course))
		}

		found, err := svc.FindCourses(ctx, mdubot.CourseFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})
}

func TestCourseService_DeleteCourse(t *testing.T) {
	t.Parallel()

	t.Run("deletes course and its chunks", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)
		chunks := sqlite.NewChunkService(db)
		ctx := context.Background()

		course := newTestCourse(25000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, svc.CreateCourse(ctx, course))
		require.NoError(t, chunks.CreateChunks(ctx, []*mdubot.Chunk{
			{OwnerID: course.ID, Kind: mdubot.ChunkCourse, Code: "dva117", Content: "text"},
		}))

		require.NoError(t, svc.DeleteCourse(ctx, course.ID))

		_, err := svc.FindCourseByID(ctx, course.ID)
		assert.Equal(t, mdubot.ENOTFOUND, mdubot.ErrorCode(err))

		remaining, err := chunks.FindChunks(ctx, mdubot.ChunkFilter{OwnerID: &course.ID})
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCourseService(db)

		err := svc.DeleteCourse(context.Background(), "nope")
		assert.Equal(t, mdubot.ENOTFOUND, mdubot.ErrorCode(err))
	})
}

func TestCourseService_DeleteCoursesByCode(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewCourseService(db)
	ctx := context.Background()

	require.NoError(t, svc.CreateCourse(ctx, newTestCourse(25000, "dva117", time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, svc.CreateCourse(ctx, newTestCourse(27000, "dva117", time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, svc.CreateCourse(ctx, newTestCourse(25500, "mat101", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))))

	require.NoError(t, svc.DeleteCoursesByCode(ctx, "DVA117"))

	found, err := svc.FindCourses(ctx, mdubot.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "mat101", found[0].Code)
}
