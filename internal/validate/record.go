package validate

import (
	"time"

	"github.com/pkordes/wanderlist/internal/domain"
)

// Candidate is a partial, loosely typed trip record, typically decoded JSON.
// Any key may be missing and any value may have the wrong type.
type Candidate map[string]any

// Result is the outcome of Record.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// RequiredFields must be present and non-empty on every stored trip.
var RequiredFields = []string{"id", "title", "startDate", "endDate", "stage", "createdAt", "updatedAt"}

var dateFields = []string{"startDate", "endDate", "createdAt", "updatedAt"}

// Record validates a whole candidate record and returns every distinct
// problem, in the order found.
func Record(c Candidate) Result {
	var errs messages

	for _, f := range RequiredFields {
		if missing(c[f]) {
			errs.add("Missing required field: " + f)
		}
	}

	if v, ok := present(c, "title"); ok {
		s, isString := v.(string)
		switch {
		case !isString:
			errs.add(MsgTitleNotString)
		case s != "":
			// An empty title is reported as missing above; blank and
			// too-long titles get their own message.
			errs.add(Title(s))
		default:
			errs.add(MsgTitleEmpty)
		}
	}

	for _, f := range dateFields {
		v, ok := present(c, f)
		if !ok || missing(v) {
			continue
		}
		if s, isString := v.(string); !isString {
			errs.add("Invalid date format for " + f)
		} else if _, valid := ParseDate(s); !valid {
			errs.add("Invalid date format for " + f)
		}
	}

	start, okStart := dateValue(c, "startDate")
	end, okEnd := dateValue(c, "endDate")
	if okStart && okEnd && start.After(end) {
		errs.add(MsgEndBeforeStart)
	}

	if v, ok := present(c, "notes"); ok {
		if s, isString := v.(string); !isString {
			errs.add(MsgNotesNotString)
		} else {
			errs.add(Notes(&s))
		}
	}

	if v, ok := present(c, "stage"); ok && !missing(v) {
		if s, isString := v.(string); !isString {
			errs.add(MsgStageInvalid)
		} else {
			errs.add(Stage(s))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs.list()}
}

// TripCandidate converts a typed trip into a Candidate for Record.
// Notes is left out when the trip has none.
func TripCandidate(t domain.Trip) Candidate {
	c := Candidate{
		"id":        t.ID,
		"title":     t.Title,
		"startDate": t.StartDate,
		"endDate":   t.EndDate,
		"stage":     string(t.Stage),
		"createdAt": t.CreatedAt,
		"updatedAt": t.UpdatedAt,
	}
	if t.Notes != nil {
		c["notes"] = *t.Notes
	}
	return c
}

func present(c Candidate, key string) (any, bool) {
	v, ok := c[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// missing mirrors a falsy check: nil, empty string, false and zero count as missing.
func missing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case int:
		return x == 0
	}
	return false
}

func dateValue(c Candidate, key string) (t time.Time, ok bool) {
	s, isString := c[key].(string)
	if !isString {
		return t, false
	}
	return ParseDate(s)
}

// messages is an insertion-ordered set of error strings.
type messages []string

func (m *messages) add(msg string) {
	if msg == "" {
		return
	}
	for _, existing := range *m {
		if existing == msg {
			return
		}
	}
	*m = append(*m, msg)
}

func (m messages) list() []string {
	if m == nil {
		return []string{}
	}
	return m
}
