package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/sampler"
	"github.com/abhisek/onthi/internal/session"
)

// ErrInvalidRequest wraps every StartRequest validation failure.
var ErrInvalidRequest = errors.New("invalid start request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// StartRequest describes the session the presentation layer wants.
type StartRequest struct {
	Kind session.Kind `validate:"oneof=practice exam"`

	// Mode selects practice questions. Exams derive it from Variant.
	Mode sampler.Mode `validate:"omitempty,oneof=random full wrong critical signs category custom speed"`

	Variant session.Variant `validate:"omitempty,oneof=standard full wrong speed"`

	// Category is required for sampler.ModeCategory.
	Category questionbank.Category

	// CustomIDs or SearchTerm feed sampler.ModeCustom. When both are set
	// the explicit IDs win.
	CustomIDs  []int `validate:"dive,gt=0"`
	SearchTerm string

	// Limit caps full and wrong-only draws; zero means no cap.
	Limit int `validate:"gte=0"`
}

// Validate checks field rules and the combinations they depend on.
func (r StartRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	switch r.Kind {
	case session.KindExam:
		if r.Variant == "" {
			return fmt.Errorf("%w: exam requires a variant", ErrInvalidRequest)
		}
	case session.KindPractice:
		if r.Mode == "" {
			return fmt.Errorf("%w: practice requires a mode", ErrInvalidRequest)
		}
		if r.Mode == sampler.ModeCategory && !r.Category.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidRequest, r.Category)
		}
		if r.Mode == sampler.ModeCustom && len(r.CustomIDs) == 0 && r.SearchTerm == "" {
			return fmt.Errorf("%w: custom practice needs question ids or a search term", ErrInvalidRequest)
		}
	}
	return nil
}

// Practice returns a request for a practice session in mode.
func Practice(mode sampler.Mode) StartRequest {
	return StartRequest{Kind: session.KindPractice, Mode: mode}
}

// Exam returns a request for an exam of variant.
func Exam(variant session.Variant) StartRequest {
	return StartRequest{Kind: session.KindExam, Variant: variant}
}
