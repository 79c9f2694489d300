package service

import "github.com/pkordes/wanderlist/internal/validate"

// Draft is a trip form as the user is filling it in.
// Stage is only checked when set.
type Draft struct {
	Title     string
	StartDate string
	EndDate   string
	Notes     *string
	Stage     *string
}

// FieldErrors holds one message per form field; empty means valid.
type FieldErrors struct {
	Title string `json:"title,omitempty"`
	Dates string `json:"dates,omitempty"`
	Notes string `json:"notes,omitempty"`
	Stage string `json:"stage,omitempty"`
}

// CheckDraft runs the field validators for live form feedback.
func CheckDraft(d Draft) FieldErrors {
	fe := FieldErrors{
		Title: validate.Title(d.Title),
		Dates: validate.Dates(d.StartDate, d.EndDate),
		Notes: validate.Notes(d.Notes),
	}
	if d.Stage != nil {
		fe.Stage = validate.Stage(*d.Stage)
	}
	return fe
}

// Empty reports whether every field passed.
func (fe FieldErrors) Empty() bool {
	return fe == FieldErrors{}
}

// Messages returns the non-empty messages in form order.
func (fe FieldErrors) Messages() []string {
	var out []string
	for _, m := range []string{fe.Title, fe.Dates, fe.Notes, fe.Stage} {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
