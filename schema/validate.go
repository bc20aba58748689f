package schema

import (
	"errors"
	"fmt"

	"github.com/tsawler/resumeparser/dates"
)

// Errors returned by validation
var (
	// ErrInvalidDate marks a date field outside YYYY, YYYY-MM or present
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidType marks a value of the wrong shape, such as a section
	// that is not a list
	ErrInvalidType = errors.New("invalid type")
)

// ValidationError describes one invalid field
type ValidationError struct {
	Field string // dotted path, e.g. "education[0].end_date"
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalidDate(field string, value string) error {
	return &ValidationError{Field: field, Value: value, Err: ErrInvalidDate}
}

func invalidType(field string, value any, want string) error {
	return &ValidationError{
		Field: field,
		Value: fmt.Sprintf("%T", value),
		Err:   fmt.Errorf("%w: want %s", ErrInvalidType, want),
	}
}

// Validate checks every date field. It returns the first violation found.
func (r *Resume) Validate() error {
	check := func(field, value string) error {
		if value == "" || dates.IsCanonical(value) {
			return nil
		}
		return invalidDate(field, value)
	}

	for i, e := range r.Education {
		if err := check(fmt.Sprintf("education[%d].start_date", i), e.StartDate); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("education[%d].end_date", i), e.EndDate); err != nil {
			return err
		}
	}
	for i, w := range r.WorkExperience {
		if err := check(fmt.Sprintf("work_experience[%d].start_date", i), w.StartDate); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("work_experience[%d].end_date", i), w.EndDate); err != nil {
			return err
		}
		if w.DurationMonths != nil && *w.DurationMonths < 0 {
			return invalidType(fmt.Sprintf("work_experience[%d].duration_months", i), *w.DurationMonths, "non-negative integer")
		}
	}
	for i, p := range r.Projects {
		if err := check(fmt.Sprintf("projects[%d].start_date", i), p.StartDate); err != nil {
			return err
		}
		if err := check(fmt.Sprintf("projects[%d].end_date", i), p.EndDate); err != nil {
			return err
		}
	}
	for i, c := range r.Certifications {
		if err := check(fmt.Sprintf("certifications[%d].date", i), c.Date); err != nil {
			return err
		}
	}
	for i, p := range r.Publications {
		if err := check(fmt.Sprintf("publications[%d].date", i), p.Date); err != nil {
			return err
		}
	}
	return nil
}
