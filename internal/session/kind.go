package session

import (
	"fmt"
	"time"

	"github.com/abhisek/onthi/internal/sampler"
)

// Kind distinguishes practice runs from timed exams.
type Kind string

const (
	KindPractice Kind = "practice"
	KindExam     Kind = "exam"
)

// Status is the lifecycle phase of a session.
type Status int

const (
	StatusNotStarted Status = iota // Created, no questions yet
	StatusInProgress                // Questions fixed, accepting answers
	StatusFinished                  // Terminal
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusFinished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Variant is an exam configuration.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantFull     Variant = "full"
	VariantWrong    Variant = "wrong"
	VariantSpeed    Variant = "speed"
)

// Exam time limits.
const (
	StandardTimeLimit = 19 * time.Minute
	FullTimeLimit     = 190 * time.Minute
	SpeedTimeLimit    = 5 * time.Minute
)

// AllVariants returns every exam variant in menu order.
func AllVariants() []Variant {
	return []Variant{VariantStandard, VariantFull, VariantWrong, VariantSpeed}
}

// ParseVariant converts a string to a Variant.
func ParseVariant(s string) (Variant, error) {
	for _, v := range AllVariants() {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown exam variant %q", s)
}

// TimeLimit returns the countdown length for the variant.
func (v Variant) TimeLimit() time.Duration {
	switch v {
	case VariantFull:
		return FullTimeLimit
	case VariantSpeed:
		return SpeedTimeLimit
	default:
		return StandardTimeLimit
	}
}

// Mode returns the sampler mode that draws the variant's questions.
func (v Variant) Mode() sampler.Mode {
	switch v {
	case VariantFull:
		return sampler.ModeFull
	case VariantWrong:
		return sampler.ModeWrong
	case VariantSpeed:
		return sampler.ModeSpeed
	default:
		return sampler.ModeRandom
	}
}

// DisplayName returns the Vietnamese label for the variant.
func (v Variant) DisplayName() string {
	switch v {
	case VariantStandard:
		return "Thi thử 25 câu"
	case VariantFull:
		return "Thi toàn bộ đề"
	case VariantWrong:
		return "Thi câu đã sai"
	case VariantSpeed:
		return "Thi tốc độ 5 phút"
	default:
		return string(v)
	}
}
