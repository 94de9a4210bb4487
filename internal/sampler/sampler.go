// Package sampler selects question sets from a bank for each practice and
// exam mode. Selection is pure given the random source.
package sampler

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/onthi/internal/questionbank"
)

// Mode identifies a selection strategy.
type Mode string

const (
	ModeRandom   Mode = "random"
	ModeFull     Mode = "full"
	ModeWrong    Mode = "wrong"
	ModeCritical Mode = "critical"
	ModeSigns    Mode = "signs"
	ModeCategory Mode = "category"
	ModeCustom   Mode = "custom"
	ModeSpeed    Mode = "speed"
)

// Shape of a standard exam draw.
const (
	ExamSize     = 25
	ExamCritical = 2
)

// AllModes returns every mode in menu order.
func AllModes() []Mode {
	return []Mode{ModeRandom, ModeFull, ModeWrong, ModeCritical, ModeSigns, ModeCategory, ModeCustom, ModeSpeed}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range AllModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// DisplayName returns the Vietnamese label for the mode.
func (m Mode) DisplayName() string {
	switch m {
	case ModeRandom:
		return "Ngẫu nhiên 25 câu"
	case ModeFull:
		return "Toàn bộ câu hỏi"
	case ModeWrong:
		return "Câu đã làm sai"
	case ModeCritical:
		return "Câu điểm liệt"
	case ModeSigns:
		return "Biển báo"
	case ModeCategory:
		return "Theo chủ đề"
	case ModeCustom:
		return "Câu hỏi tìm kiếm"
	case ModeSpeed:
		return "Thi tốc độ"
	default:
		return string(m)
	}
}

// Context carries the per-mode inputs.
type Context struct {
	// WrongIDs are the question IDs with a stored wrong answer (ModeWrong).
	WrongIDs []int
	// Category is the topic to practise (ModeCategory).
	Category questionbank.Category
	// CustomIDs is the explicit allow-list (ModeCustom).
	CustomIDs []int
	// Limit caps the result size for ModeFull and ModeWrong when > 0.
	Limit int
}

// Sample returns the questions for mode. Candidate sets smaller than the
// requested size are returned whole; an empty bank or unknown mode yields an
// empty result.
func Sample(mode Mode, bank *questionbank.Bank, ctx Context, rng *rand.Rand) []questionbank.Question {
	if bank.Len() == 0 {
		return nil
	}

	switch mode {
	case ModeRandom, ModeSpeed:
		return drawExam(bank, rng)

	case ModeFull:
		return capped(shuffled(bank.All(), rng), ctx.Limit)

	case ModeWrong:
		wrong := idSet(ctx.WrongIDs)
		picked := bank.Filter(func(q questionbank.Question) bool {
			_, ok := wrong[q.ID]
			return ok
		})
		return capped(shuffled(picked, rng), ctx.Limit)

	case ModeCritical:
		return bank.Critical()

	case ModeSigns:
		return bank.Filter(func(q questionbank.Question) bool { return q.IsSign })

	case ModeCategory:
		return bank.Filter(func(q questionbank.Question) bool { return q.Category == ctx.Category })

	case ModeCustom:
		allowed := idSet(ctx.CustomIDs)
		return bank.Filter(func(q questionbank.Question) bool {
			_, ok := allowed[q.ID]
			return ok
		})
	}
	return nil
}

// drawExam picks ExamCritical critical questions (or all available) and fills
// the rest of ExamSize from non-critical ones, then shuffles the union.
func drawExam(bank *questionbank.Bank, rng *rand.Rand) []questionbank.Question {
	critical := shuffled(bank.Critical(), rng)
	regular := shuffled(bank.Filter(func(q questionbank.Question) bool { return !q.IsCritical }), rng)

	critical = capped(critical, ExamCritical)
	regular = capped(regular, ExamSize-len(critical))

	out := make([]questionbank.Question, 0, len(critical)+len(regular))
	out = append(out, critical...)
	out = append(out, regular...)
	return shuffled(out, rng)
}

// shuffled permutes qs in place with Fisher–Yates and returns it.
func shuffled(qs []questionbank.Question, rng *rand.Rand) []questionbank.Question {
	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	return qs
}

func capped(qs []questionbank.Question, limit int) []questionbank.Question {
	if limit > 0 && len(qs) > limit {
		return qs[:limit]
	}
	return qs
}

func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// NewRand returns a random source seeded from the runtime.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
