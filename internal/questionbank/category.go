package questionbank

import "strings"

// Category is the topic group a question belongs to.
type Category string

const (
	CategoryConcepts  Category = "concepts"  // Khái Niệm & Quy Tắc
	CategoryCulture   Category = "culture"   // Văn Hóa Giao Thông
	CategoryTechnique Category = "technique" // Kỹ Thuật Lái Xe
	CategorySituation Category = "situation" // Sa Hình
	CategorySigns     Category = "signs"     // Biển Báo
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryConcepts,
		CategoryCulture,
		CategoryTechnique,
		CategorySituation,
		CategorySigns,
	}
}

// DisplayName returns the Vietnamese label used in the question bank.
func (c Category) DisplayName() string {
	switch c {
	case CategoryConcepts:
		return "Khái Niệm & Quy Tắc"
	case CategoryCulture:
		return "Văn Hóa Giao Thông"
	case CategoryTechnique:
		return "Kỹ Thuật Lái Xe"
	case CategorySituation:
		return "Sa Hình"
	case CategorySigns:
		return "Biển Báo"
	default:
		return string(c)
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory accepts either the identifier ("signs") or the Vietnamese
// display name ("Biển Báo").
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range AllCategories() {
		if strings.EqualFold(s, string(c)) || s == c.DisplayName() {
			return c, true
		}
	}
	return "", false
}

var (
	situationKeywords = []string{
		"sa hình", "hình dưới", "trong hình", "theo hướng", "giao nhau", "thứ tự",
		"nhường đường", "làn đường", "rẽ trái", "rẽ phải", "quay đầu",
	}
	situationConfirmKeywords = []string{"hình", "giao nhau", "thứ tự"}
	cultureKeywords          = []string{
		"văn hóa", "còi", "rượu", "bia", "nồng độ cồn", "đạo đức", "hành vi",
		"ứng xử", "an toàn", "văn minh",
	}
	techniqueKeywords = []string{
		"kỹ thuật", "kỹ năng", "vào số", "phanh", "ga", "vào cua", "tăng số",
		"giảm số", "khởi hành", "đổ đèo", "quãng đường", "rẽ",
	}
)

// InferCategory resolves the category of q. Boolean flags win, then a valid
// explicit category label, then keyword heuristics over the question text and
// explanation. Questions that match nothing fall back to CategoryConcepts.
func InferCategory(q Question) Category {
	switch {
	case q.IsSign:
		return CategorySigns
	case flagSet(q.IsSaHinh):
		return CategorySituation
	case flagSet(q.IsKhaiNiemQuyTac):
		return CategoryConcepts
	case flagSet(q.IsVanHoaGiaoThong):
		return CategoryCulture
	case flagSet(q.IsKyThuatLaiXe):
		return CategoryTechnique
	}

	if c, ok := ParseCategory(q.CategoryLabel); ok {
		return c
	}

	text := strings.ToLower(q.Text + " \n " + q.Explanation)

	if q.Image != "" || hasAny(text, situationKeywords) {
		// Law-only text that merely mentions a lane or a turn is not a
		// situation question unless it refers to a picture or an intersection.
		if q.Image != "" || hasAny(text, situationConfirmKeywords) {
			return CategorySituation
		}
	}
	if hasAny(text, cultureKeywords) {
		return CategoryCulture
	}
	if hasAny(text, techniqueKeywords) {
		return CategoryTechnique
	}
	return CategoryConcepts
}

func flagSet(b *bool) bool {
	return b != nil && *b
}

// hasAny expects text to be lower-cased already.
func hasAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
