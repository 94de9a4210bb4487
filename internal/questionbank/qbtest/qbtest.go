// Package qbtest builds synthetic question banks for tests.
package qbtest

import (
	"fmt"

	"github.com/abhisek/onthi/internal/questionbank"
)

// Spec describes the shape of a synthetic bank. Critical questions come
// first, then sign questions, then regular ones; IDs run 1..n in that order.
type Spec struct {
	Critical int
	Signs    int
	Regular  int
}

// Questions builds the raw questions for spec. Every question has four
// answers; the correct one is at ID % 4.
func Questions(spec Spec) []questionbank.Question {
	var out []questionbank.Question
	add := func(n int, critical, sign bool) {
		for i := 0; i < n; i++ {
			id := len(out) + 1
			q := questionbank.Question{
				ID:            id,
				Text:          fmt.Sprintf("Question %d", id),
				Answers:       []string{"A", "B", "C", "D"},
				CorrectAnswer: id % 4,
				IsCritical:    critical,
				IsSign:        sign,
			}
			if sign {
				q.Image = fmt.Sprintf("sign-%d.png", id)
			}
			out = append(out, q)
		}
	}
	add(spec.Critical, true, false)
	add(spec.Signs, false, true)
	add(spec.Regular, false, false)
	return out
}

// Bank builds a Bank for spec and panics on error; synthetic questions are
// always valid.
func Bank(spec Spec) *questionbank.Bank {
	b, err := questionbank.New(Questions(spec))
	if err != nil {
		panic(err)
	}
	return b
}

// Wrong returns an option index that is not the correct answer for q.
func Wrong(q questionbank.Question) int {
	return (q.CorrectAnswer + 1) % len(q.Answers)
}
