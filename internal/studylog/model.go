// Package studylog stores study logs, the records of time spent studying a subject.
package studylog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyNote       = errors.New("note is empty")
	ErrEmptySubject    = errors.New("subject is empty")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrNotFound        = errors.New("study log not found")
)

// Record is one logged study session.
type Record struct {
	ID              string    `db:"id" yaml:"id"`
	UserID          string    `db:"user_id" yaml:"user_id"`
	Subject         string    `db:"subject" yaml:"subject"`
	ReferenceBookID *string   `db:"reference_book_id" yaml:"reference_book_id,omitempty"`
	StudyMinutes    int       `db:"study_minutes" yaml:"study_minutes"`
	StartedAt       time.Time `db:"started_at" yaml:"started_at"`
	Note            *string   `db:"note" yaml:"note,omitempty"`
	CreatedAt       time.Time `db:"created_at" yaml:"-"`
	UpdatedAt       time.Time `db:"updated_at" yaml:"-"`
}

// NoteText returns the trimmed note, or "" when there is none.
func (r Record) NoteText() string {
	if r.Note == nil {
		return ""
	}
	return strings.TrimSpace(*r.Note)
}

// HasNote reports whether the record takes part in review scheduling.
func (r Record) HasNote() bool {
	return r.NoteText() != ""
}

// GroupKey is the reference book id when present, otherwise the subject.
func (r Record) GroupKey() string {
	if r.ReferenceBookID != nil && *r.ReferenceBookID != "" {
		return "book:" + *r.ReferenceBookID
	}
	return "subject:" + r.Subject
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.Subject) == "" {
		return ErrEmptySubject
	}
	if r.StudyMinutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, r.StudyMinutes)
	}
	return nil
}

// ParseMinutes parses a duration typed by a learner.
func ParseMinutes(value string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || minutes <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, value)
	}
	return minutes, nil
}

// ReferenceBook is a study material a record may point at.
type ReferenceBook struct {
	ID        string     `db:"id" yaml:"id"`
	UserID    string     `db:"user_id" yaml:"user_id"`
	Title     string     `db:"title" yaml:"title"`
	CreatedAt time.Time  `db:"created_at" yaml:"-"`
	DeletedAt *time.Time `db:"deleted_at" yaml:"deleted_at,omitempty"`
}

// DisplaySubject resolves the label shown for a record: the book title when the
// book is still available, otherwise the subject.
func DisplaySubject(r Record, books map[string]ReferenceBook) string {
	if r.ReferenceBookID == nil {
		return r.Subject
	}
	if book, ok := books[*r.ReferenceBookID]; ok && book.DeletedAt == nil {
		return book.Title
	}
	return r.Subject
}
