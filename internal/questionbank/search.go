package questionbank

import "strings"

// OtherKeyword groups search hits that mention none of the known keywords.
const OtherKeyword = "Khác"

var searchKeywords = []string{
	"biển báo", "biển", "tốc độ", "điểm liệt", "nồng độ cồn",
	"giao thông", "đường bộ", "xe mô tô", "xe gắn máy",
	"quy tắc", "luật giao thông", "vi phạm", "cấm",
	"được phép", "không được", "bắt buộc", "báo hiệu",
	"quay đầu", "rẽ trái", "rẽ phải", "dừng xe", "đỗ xe",
	"vượt xe", "làn đường", "ưu tiên", "giao nhau",
}

// Search returns questions whose text, answers or explanation contain term,
// case-insensitively, in bank order. A blank term matches nothing.
func (b *Bank) Search(term string) []Question {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	return b.Filter(func(q Question) bool {
		if strings.Contains(strings.ToLower(q.Text), term) {
			return true
		}
		for _, a := range q.Answers {
			if strings.Contains(strings.ToLower(a), term) {
				return true
			}
		}
		return strings.Contains(strings.ToLower(q.Explanation), term)
	})
}

// KeywordGroup is a set of search hits sharing a main keyword.
type KeywordGroup struct {
	Keyword   string
	Questions []Question
}

// GroupByKeyword groups questions by the first known keyword found in their
// text. Groups appear in order of first occurrence.
func GroupByKeyword(questions []Question) []KeywordGroup {
	var groups []KeywordGroup
	pos := make(map[string]int)
	for _, q := range questions {
		kw := mainKeyword(q.Text)
		i, ok := pos[kw]
		if !ok {
			i = len(groups)
			pos[kw] = i
			groups = append(groups, KeywordGroup{Keyword: kw})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups
}

func mainKeyword(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range searchKeywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return OtherKeyword
}

// IDs returns the IDs of questions in order.
func IDs(questions []Question) []int {
	ids := make([]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}
