package questionbank

import "fmt"

// Question is a single multiple-choice item from the bank.
type Question struct {
	ID            int      `json:"id" validate:"gt=0"`
	Text          string   `json:"question" validate:"required"`
	Answers       []string `json:"answers" validate:"min=2,dive,required"`
	CorrectAnswer int      `json:"correctAnswer" validate:"gte=0"`
	Explanation   string   `json:"explanation,omitempty"`
	Image         string   `json:"image,omitempty"`
	IsCritical    bool     `json:"isDiemLiet"`
	IsSign        bool     `json:"isTrafficSign"`

	// Optional category flags. Nil means the flag is absent from the source.
	IsSaHinh          *bool  `json:"isSaHinh,omitempty"`
	IsKhaiNiemQuyTac  *bool  `json:"isKhaiNiemQuyTac,omitempty"`
	IsVanHoaGiaoThong *bool  `json:"isVanHoaGiaoThong,omitempty"`
	IsKyThuatLaiXe    *bool  `json:"isKyThuatLaiXe,omitempty"`
	CategoryLabel     string `json:"category,omitempty"`

	// Category is resolved once when the bank is built.
	Category Category `json:"-"`
}

// OptionLabel returns the letter shown for the answer at index i (A, B, C…).
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return fmt.Sprintf("%d", i+1)
	}
	return string(rune('A' + i))
}

// HasImage reports whether the question is illustrated.
func (q Question) HasImage() bool {
	return q.Image != ""
}

// Bank is an immutable, ordered collection of questions.
type Bank struct {
	questions []Question
	index     map[int]int // question ID → position
}

// New builds a Bank from questions, resolving each question's category.
// It returns an error if an ID repeats or a correct-answer index is out of range.
func New(questions []Question) (*Bank, error) {
	b := &Bank{
		questions: make([]Question, len(questions)),
		index:     make(map[int]int, len(questions)),
	}
	for i, q := range questions {
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Answers) {
			return nil, fmt.Errorf("question %d: correct answer %d out of range [0,%d)", q.ID, q.CorrectAnswer, len(q.Answers))
		}
		if _, dup := b.index[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id", q.ID)
		}
		q.Answers = append([]string(nil), q.Answers...)
		q.Category = InferCategory(q)
		b.questions[i] = q
		b.index[q.ID] = i
	}
	return b, nil
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.questions)
}

// All returns a copy of every question in bank order.
func (b *Bank) All() []Question {
	if b == nil {
		return nil
	}
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// Get returns the question with the given ID.
func (b *Bank) Get(id int) (Question, bool) {
	if b == nil {
		return Question{}, false
	}
	i, ok := b.index[id]
	if !ok {
		return Question{}, false
	}
	return b.questions[i], true
}

// Filter returns the questions matching keep, in bank order.
func (b *Bank) Filter(keep func(Question) bool) []Question {
	if b == nil {
		return nil
	}
	var out []Question
	for _, q := range b.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// Critical returns all fail-immediately questions in bank order.
func (b *Bank) Critical() []Question {
	return b.Filter(func(q Question) bool { return q.IsCritical })
}

// CountByCategory returns the number of questions per category.
func (b *Bank) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	if b == nil {
		return counts
	}
	for _, q := range b.questions {
		counts[q.Category]++
	}
	return counts
}
