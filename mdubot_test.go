package mdubot_test

import (
	"fmt"
	"testing"

	"github.com/henfal/mdubot"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := mdubot.Errorf(mdubot.ENOTFOUND, "course %q not found", "dva117")

	assert.Equal(t, mdubot.ENOTFOUND, mdubot.ErrorCode(err))
	assert.Equal(t, "course \"dva117\" not found", mdubot.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mdubot.ErrorCode(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("saving: %w", mdubot.Errorf(mdubot.EINVALID, "bad input"))

	assert.Equal(t, mdubot.EINVALID, mdubot.ErrorCode(err))
	assert.Equal(t, "bad input", mdubot.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("disk full")

	assert.Equal(t, mdubot.EINTERNAL, mdubot.ErrorCode(err))
	assert.Equal(t, "Internal error.", mdubot.ErrorMessage(err))
}

func TestIsPlaceholder(t *testing.T) {
	t.Parallel()

	assert.True(t, mdubot.IsPlaceholder("<title>$details.name</title>"))
	assert.False(t, mdubot.IsPlaceholder("<title>Kursplan - Programmering</title>"))
}

func TestCourseValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		c := &mdubot.Course{SourceID: 25000, URL: "https://www.mdu.se/utbildning/kursplan?id=25000"}
		assert.NoError(t, c.Validate())
	})

	t.Run("missing source ID", func(t *testing.T) {
		t.Parallel()
		c := &mdubot.Course{URL: "https://example.com"}
		assert.Equal(t, mdubot.EINVALID, mdubot.ErrorCode(c.Validate()))
	})

	t.Run("missing URL", func(t *testing.T) {
		t.Parallel()
		c := &mdubot.Course{SourceID: 1}
		assert.Equal(t, mdubot.EINVALID, mdubot.ErrorCode(c.Validate()))
	})
}

func TestChunkValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		c := &mdubot.Chunk{OwnerID: "abc", Kind: mdubot.ChunkCourse, Content: "text"}
		assert.NoError(t, c.Validate())
	})

	t.Run("bad kind", func(t *testing.T) {
		t.Parallel()
		c := &mdubot.Chunk{OwnerID: "abc", Kind: "syllabus", Content: "text"}
		assert.Equal(t, mdubot.EINVALID, mdubot.ErrorCode(c.Validate()))
	})
}
