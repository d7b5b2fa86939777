package jsonl_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/henfal/mdubot"
	"github.com/henfal/mdubot/jsonl"
	"github.com/henfal/mdubot/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		var record map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record))
		lines = append(lines, record)
	}
	require.NoError(t, scanner.Err())
	return lines
}

func TestExporter_ExportAll(t *testing.T) {
	t.Parallel()

	oldCourse := &mdubot.Course{
		ID: "c-old", SourceID: 25000, Code: "dva117", Name: "Programmering",
		ValidFrom: time.Date(2019, 8, 1, 0, 0, 0, 0, time.UTC),
		URL:       "https://www.mdu.se/utbildning/kursplan?id=25000",
	}
	newCourse := &mdubot.Course{
		ID: "c-new", SourceID: 27000, Code: "dva117", Name: "Programmering",
		Active:    true,
		ValidFrom: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		URL:       "https://www.mdu.se/utbildning/kursplan?id=27000",
	}
	program := &mdubot.Program{
		ID: "p1", SourceID: 500, Code: "gkv01", Name: "Robotik",
		Active:    true,
		ValidFrom: time.Date(2022, 8, 1, 0, 0, 0, 0, time.UTC),
		URL:       "https://www.mdu.se/utbildning/utbildningsplan?id=500",
	}

	courses := &mock.CourseService{
		FindCoursesFn: func(ctx context.Context, filter mdubot.CourseFilter) ([]*mdubot.Course, error) {
			if filter.NewestOnly {
				return []*mdubot.Course{newCourse}, nil
			}
			return []*mdubot.Course{newCourse, oldCourse}, nil
		},
	}
	programs := &mock.ProgramService{
		FindProgramsFn: func(ctx context.Context, filter mdubot.ProgramFilter) ([]*mdubot.Program, error) {
			return []*mdubot.Program{program}, nil
		},
	}

	dir := t.TempDir()
	exporter := &jsonl.Exporter{Courses: courses, Programs: programs}
	require.NoError(t, exporter.ExportAll(context.Background(), dir))

	t.Run("courses.jsonl holds every version", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, jsonl.CoursesFile))
		require.Len(t, lines, 2)
		assert.Equal(t, "dva117", lines[0]["code"])
		assert.Equal(t, float64(27000), lines[0]["sourceId"])
		assert.Equal(t, float64(25000), lines[1]["sourceId"])
	})

	t.Run("programs.jsonl holds program records", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, jsonl.ProgramsFile))
		require.Len(t, lines, 1)
		assert.Equal(t, "gkv01", lines[0]["code"])
		assert.Equal(t, "Robotik", lines[0]["name"])
	})

	t.Run("newest_versions.jsonl has one line per code", func(t *testing.T) {
		lines := readLines(t, filepath.Join(dir, jsonl.NewestVersionsFile))
		require.Len(t, lines, 2)

		byCode := map[string]map[string]any{}
		for _, line := range lines {
			byCode[line["code"].(string)] = line
		}

		course := byCode["dva117"]
		require.NotNil(t, course)
		assert.Equal(t, "course", course["kind"])
		assert.Equal(t, float64(27000), course["sourceId"], "only the newest version is listed")
		assert.Equal(t, true, course["active"])

		prog := byCode["gkv01"]
		require.NotNil(t, prog)
		assert.Equal(t, "program", prog["kind"])
	})
}
