package mdubot_test

import (
	"testing"
	"time"

	"github.com/henfal/mdubot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCourseCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single code",
			text: "what is dva117 about?",
			want: []string{"dva117"},
		},
		{
			name: "uppercase input is normalized",
			text: "Tell me about DVA117",
			want: []string{"dva117"},
		},
		{
			name: "multiple codes",
			text: "compare dva117 and mat101",
			want: []string{"dva117", "mat101"},
		},
		{
			name: "program code is not a course code",
			text: "what courses are in gkv01?",
			want: nil,
		},
		{
			name: "no codes",
			text: "which programs teach machine learning?",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdubot.DetectCourseCodes(tt.text))
		})
	}
}

func TestDetectProgramCodes(t *testing.T) {
	t.Parallel()

	t.Run("finds program codes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, []string{"gkv01"}, mdubot.DetectProgramCodes("tell me about GKV01"))
	})

	t.Run("course code does not match as program code", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, mdubot.DetectProgramCodes("what is dva117 about?"))
	})
}

func TestParseValidFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{
			name:  "ISO date",
			value: "2023-08-28",
			want:  time.Date(2023, time.August, 28, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "ISO date with surrounding whitespace",
			value: "  2021-01-11 ",
			want:  time.Date(2021, time.January, 11, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "autumn term",
			value: "Hösttermin 2023",
			want:  time.Date(2023, time.August, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "spring term",
			value: "Vårtermin 2024",
			want:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			ok:    true,
		},
		{
			name:  "unrecognized",
			value: "whenever",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := mdubot.ParseValidFrom(tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
			}
		})
	}
}

func TestDetectLanguages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "explicit swedish indicator",
			text: "Undervisningen sker på svenska men engelska kan förekomma.",
			want: []string{"svenska"},
		},
		{
			name: "explicit english indicator",
			text: "Programmet ges på engelska.",
			want: []string{"engelska"},
		},
		{
			name: "both indicators",
			text: "Undervisning sker på svenska. Kurslitteraturen är på engelska.",
			want: []string{"engelska", "svenska"},
		},
		{
			name: "fallback to bare mention",
			text: "Språk: svenska",
			want: []string{"svenska"},
		},
		{
			name: "nothing stated",
			text: "Programmet omfattar 180 högskolepoäng.",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mdubot.DetectLanguages(tt.text))
		})
	}
}
