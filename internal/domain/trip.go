// Package domain contains the core data types for the Wanderlist application.
// It is imported by every other internal package (validate, repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// TimestampLayout renders instants the way a browser's Date.toISOString does:
// UTC, millisecond precision, literal Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DateLayout is the calendar-date prefix every trip date must carry.
const DateLayout = "2006-01-02"

// Field limits shared by the validators and the template constructor.
const (
	MaxTitleLength = 100
	MaxNotesLength = 500
)

// Trip is a single planned adventure.
// Field names and JSON keys are the persisted layout of the trip collection.
// Notes is nil (and omitted from JSON) when the user never supplied any.
type Trip struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Notes     *string `json:"notes,omitempty"`
	Stage     Stage   `json:"stage"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// NewTripTemplate builds a fresh Trip ready to be saved.
// Title and notes are trimmed; a nil notes pointer stays nil.
// CreatedAt and UpdatedAt are stamped with the same instant.
func NewTripTemplate(title, startDate, endDate string, notes *string, now time.Time) Trip {
	ts := FormatTimestamp(now)
	t := Trip{
		ID:        GenerateTripID(now),
		Title:     strings.TrimSpace(title),
		StartDate: startDate,
		EndDate:   endDate,
		Stage:     StageDaydream,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if notes != nil {
		n := strings.TrimSpace(*notes)
		t.Notes = &n
	}
	return t
}
