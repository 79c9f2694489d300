// Package validate holds the pure trip validators.
//
// Field validators return "" when the value is acceptable, otherwise a
// message fit to show next to the form field. Record checks a whole,
// loosely typed candidate and collects every problem it finds.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pkordes/wanderlist/internal/domain"
)

// Messages returned by the validators. They are part of the public contract:
// the presentation layer displays them verbatim.
const (
	MsgTitleRequired  = "Title is required"
	MsgTitleEmpty     = "Title cannot be empty"
	MsgTitleTooLong   = "Title cannot exceed 100 characters"
	MsgTitleNotString = "Title must be a string"
	MsgStartInvalid   = "Invalid start date format"
	MsgEndInvalid     = "Invalid end date format"
	MsgEndBeforeStart = "End date cannot be before start date"
	MsgNotesTooLong   = "Notes cannot exceed 500 characters"
	MsgNotesNotString = "Notes must be a string"
	MsgStageInvalid   = "Invalid stage: must be one of daydream, quest, tale"
)

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// timestampLayouts are tried, in order, for date strings longer than the
// bare calendar date.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

var titleRules = []validation.Rule{
	validation.Required.Error(MsgTitleRequired),
	notBlank(MsgTitleEmpty),
	validation.RuneLength(0, domain.MaxTitleLength).Error(MsgTitleTooLong),
}

var notesRules = []validation.Rule{
	validation.RuneLength(0, domain.MaxNotesLength).Error(MsgNotesTooLong),
}

var stageRules = []validation.Rule{
	validation.Required.Error(MsgStageInvalid),
	validation.In(
		string(domain.StageDaydream),
		string(domain.StageQuest),
		string(domain.StageTale),
	).Error(MsgStageInvalid),
}

// Title checks a trip title as typed by the user.
func Title(title string) string {
	return message(validation.Validate(title, titleRules...))
}

// Dates checks both ends of a trip's date range and their ordering.
// Equal dates are valid.
func Dates(start, end string) string {
	s, ok := ParseDate(start)
	if !ok {
		return MsgStartInvalid
	}
	e, ok := ParseDate(end)
	if !ok {
		return MsgEndInvalid
	}
	if s.After(e) {
		return MsgEndBeforeStart
	}
	return ""
}

// Notes checks optional trip notes. Nil and empty notes always pass.
func Notes(notes *string) string {
	return message(validation.Validate(notes, notesRules...))
}

// Stage checks that stage is one of the known stages.
func Stage(stage string) string {
	return message(validation.Validate(stage, stageRules...))
}

// ParseDate parses a trip date: a YYYY-MM-DD prefix, optionally followed by
// the rest of an ISO timestamp. Bare dates are midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	if !datePrefix.MatchString(s) {
		return time.Time{}, false
	}
	if len(s) == len(domain.DateLayout) {
		t, err := time.Parse(domain.DateLayout, s)
		return t, err == nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func notBlank(msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return errors.New(msg)
		}
		return nil
	})
}

func message(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
