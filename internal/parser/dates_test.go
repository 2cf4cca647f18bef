package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestExtractDate(t *testing.T) {
	now := mustDate(t, "2024-06-01")

	tests := []struct {
		name  string
		lines []string
		want  string // empty = nil expected
	}{
		{
			name:  "slash format",
			lines: []string{"Date: 12/15/2023"},
			want:  "2023-12-15",
		},
		{
			name:  "dash format",
			lines: []string{"12-15-2023"},
			want:  "2023-12-15",
		},
		{
			name:  "iso format",
			lines: []string{"2023-12-15"},
			want:  "2023-12-15",
		},
		{
			name:  "textual format",
			lines: []string{"Dec 15, 2023"},
			want:  "2023-12-15",
		},
		{
			name:  "textual full month",
			lines: []string{"December 15, 2023"},
			want:  "2023-12-15",
		},
		{
			name:  "two digit year pivots forward",
			lines: []string{"12/15/23"},
			want:  "2023-12-15",
		},
		{
			name:  "two digit year pivots backward",
			lines: []string{"12/15/99"},
			want:  "1999-12-15",
		},
		{
			name:  "day first swaps when month impossible",
			lines: []string{"15/12/2023"},
			want:  "2023-12-15",
		},
		{
			name:  "future date rejected",
			lines: []string{"12/15/2030"},
			want:  "",
		},
		{
			name:  "impossible date rejected",
			lines: []string{"02/30/2023"},
			want:  "",
		},
		{
			name:  "no date",
			lines: []string{"Milk 4.99"},
			want:  "",
		},
		{
			name:  "first valid date wins",
			lines: []string{"junk", "01/10/2023", "02/20/2023"},
			want:  "2023-01-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDate(tt.lines, now)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, mustDate(t, tt.want), *got)
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"plain", []string{"14:35"}, "14:35"},
		{"with seconds", []string{"14:35:22"}, "14:35"},
		{"am pm", []string{"2:35 PM"}, "2:35 PM"},
		{"lowercase meridiem", []string{"2:35 pm"}, "2:35 PM"},
		{"invalid hour skipped", []string{"55:99", "14:35"}, "14:35"},
		{"none", []string{"Milk 4.99"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractTime(tt.lines))
		})
	}
}
