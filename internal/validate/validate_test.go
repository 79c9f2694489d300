package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/wanderlist/internal/validate"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"ordinary", "Summer Road Trip", ""},
		{"single char", "A", ""},
		{"exactly 100", strings.Repeat("A", 100), ""},
		{"100 multibyte runes", strings.Repeat("é", 100), ""},
		{"empty", "", validate.MsgTitleRequired},
		{"whitespace only", "   ", validate.MsgTitleEmpty},
		{"101 chars", strings.Repeat("A", 101), validate.MsgTitleTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Title(tt.title))
		})
	}
}

func TestDates(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       string
	}{
		{"ordered", "2025-07-01", "2025-07-07", ""},
		{"same day", "2025-07-01", "2025-07-01", ""},
		{"timestamps", "2025-07-01T08:00:00Z", "2025-07-01T09:30:00.000Z", ""},
		{"reversed", "2025-07-07", "2025-07-01", validate.MsgEndBeforeStart},
		{"start garbage", "invalid", "2025-07-01", validate.MsgStartInvalid},
		{"start us format", "07/01/2025", "2025-07-07", validate.MsgStartInvalid},
		{"end empty", "2025-07-01", "", validate.MsgEndInvalid},
		{"impossible calendar date", "2025-02-30", "2025-03-01", validate.MsgStartInvalid},
		{"month 13", "2025-07-01", "2025-13-01", validate.MsgEndInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.Dates(tt.start, tt.end))
		})
	}
}

func TestNotes(t *testing.T) {
	some := "Some notes"
	empty := ""
	max := strings.Repeat("A", 500)
	over := strings.Repeat("A", 501)

	assert.Empty(t, validate.Notes(nil))
	assert.Empty(t, validate.Notes(&empty))
	assert.Empty(t, validate.Notes(&some))
	assert.Empty(t, validate.Notes(&max))
	assert.Equal(t, validate.MsgNotesTooLong, validate.Notes(&over))
}

func TestStage(t *testing.T) {
	for _, s := range []string{"daydream", "quest", "tale"} {
		assert.Empty(t, validate.Stage(s), s)
	}
	for _, s := range []string{"", "Daydream", "legend"} {
		assert.Equal(t, validate.MsgStageInvalid, validate.Stage(s), s)
	}
}

func TestParseDate(t *testing.T) {
	d, ok := validate.ParseDate("2025-07-01")
	assert.True(t, ok)
	assert.Equal(t, "2025-07-01T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))

	_, ok = validate.ParseDate("2025-07-01T10:00:00+02:00")
	assert.True(t, ok)

	_, ok = validate.ParseDate("2025-07-01 and then some")
	assert.False(t, ok)
}
