package questionbank_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/questionbank/qbtest"
)

const sampleBank = `[
  {"id": 1, "question": "Phần của đường bộ được sử dụng cho các phương tiện giao thông qua lại là gì?",
   "answers": ["Phần mặt đường và lề đường", "Phần đường xe chạy", "Phần đường xe cơ giới"],
   "correctAnswer": 1, "isDiemLiet": true, "isTrafficSign": false},
  {"id": 2, "question": "Biển nào cấm xe mô tô?", "answers": ["Biển 1", "Biển 2"],
   "correctAnswer": 0, "image": "sign-2.png", "isDiemLiet": false, "isTrafficSign": true},
  {"id": 3, "question": "Người điều khiển xe có nồng độ cồn có bị cấm không?", "answers": ["Có", "Không"],
   "correctAnswer": 0, "explanation": "Hành vi bị nghiêm cấm.", "isDiemLiet": false, "isTrafficSign": false}
]`

func TestParse(t *testing.T) {
	bank, err := questionbank.Parse([]byte(sampleBank))
	require.NoError(t, err)
	require.Equal(t, 3, bank.Len())

	q, ok := bank.Get(2)
	require.True(t, ok)
	assert.True(t, q.IsSign)
	assert.Equal(t, questionbank.CategorySigns, q.Category)

	q, _ = bank.Get(3)
	assert.Equal(t, questionbank.CategoryCulture, q.Category)

	assert.Len(t, bank.Critical(), 1)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"not an array", `{"id": 1}`},
		{"one answer", `[{"id": 1, "question": "q", "answers": ["a"], "correctAnswer": 0}]`},
		{"missing text", `[{"id": 1, "answers": ["a", "b"], "correctAnswer": 0}]`},
		{"correct out of range", `[{"id": 1, "question": "q", "answers": ["a", "b"], "correctAnswer": 2}]`},
		{"duplicate id", `[{"id": 1, "question": "q", "answers": ["a", "b"], "correctAnswer": 0},
		                   {"id": 1, "question": "r", "answers": ["a", "b"], "correctAnswer": 1}]`},
		{"empty answer", `[{"id": 1, "question": "q", "answers": ["a", ""], "correctAnswer": 0}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := questionbank.Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyBank(t *testing.T) {
	bank, err := questionbank.Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, bank.Len())
	assert.Empty(t, bank.All())
}

func TestLoadAndSaveRoundTripFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleBank), 0o644))

	questions, err := questionbank.Decode([]byte(sampleBank))
	require.NoError(t, err)

	backup := filepath.Join(dir, "questions.backup.json")
	require.NoError(t, questionbank.Save(path, questionbank.Renumber(questions), backup))

	prev, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, sampleBank, string(prev))

	bank, err := questionbank.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, bank.Len())
}

func TestBank_AllReturnsCopy(t *testing.T) {
	bank := qbtest.Bank(qbtest.Spec{Regular: 3})
	all := bank.All()
	all[0].Text = "changed"

	q, _ := bank.Get(1)
	assert.Equal(t, "Question 1", q.Text)
}

func TestSearch(t *testing.T) {
	bank, err := questionbank.Parse([]byte(sampleBank))
	require.NoError(t, err)

	tests := []struct {
		term string
		want []int
	}{
		{"", nil},
		{"   ", nil},
		{"BIỂN", []int{2}},
		{"phần đường xe chạy", []int{1}},  // answer text
		{"nghiêm cấm", []int{3}},          // explanation
		{"không có trong bộ đề", []int{}}, // no hits
	}
	for _, tt := range tests {
		got := questionbank.IDs(bank.Search(tt.term))
		if len(tt.want) == 0 {
			assert.Empty(t, got, "term %q", tt.term)
			continue
		}
		assert.Equal(t, tt.want, got, "term %q", tt.term)
	}
}

func TestGroupByKeyword(t *testing.T) {
	questions := []questionbank.Question{
		{ID: 1, Text: "Biển báo này có ý nghĩa gì?"},
		{ID: 2, Text: "Xe được phép quay đầu ở đâu?"},
		{ID: 3, Text: "Biển báo nào là biển cấm?"},
		{ID: 4, Text: "Câu hỏi chung"},
	}
	groups := questionbank.GroupByKeyword(questions)
	require.Len(t, groups, 3)
	assert.Equal(t, "biển báo", groups[0].Keyword)
	assert.Equal(t, []int{1, 3}, questionbank.IDs(groups[0].Questions))
	assert.Equal(t, "được phép", groups[1].Keyword)
	assert.Equal(t, questionbank.OtherKeyword, groups[2].Keyword)
}

func TestOptionLabel(t *testing.T) {
	assert.Equal(t, "A", questionbank.OptionLabel(0))
	assert.Equal(t, "D", questionbank.OptionLabel(3))
}
