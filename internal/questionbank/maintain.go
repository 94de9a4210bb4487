package questionbank

import (
	"sort"
	"strings"
)

// SimilarityThreshold is the word-overlap ratio above which two distinct
// question texts are reported as similar.
const SimilarityThreshold = 0.8

// Duplicate lists the IDs sharing an identical (trimmed) question text.
type Duplicate struct {
	Text string
	IDs  []int
}

// SimilarPair is two different question texts with high word overlap.
type SimilarPair struct {
	FirstID    int
	SecondID   int
	First      string
	Second     string
	Similarity float64
}

// DuplicateReport summarizes duplicate and near-duplicate questions.
type DuplicateReport struct {
	Total      int
	Unique     int
	Duplicates []Duplicate
	Similar    []SimilarPair
}

// FindDuplicates reports exact duplicates by text and pairs of distinct texts
// whose Jaccard word similarity exceeds SimilarityThreshold.
func FindDuplicates(questions []Question) DuplicateReport {
	var order []string
	byText := make(map[string][]int)
	for _, q := range questions {
		text := strings.TrimSpace(q.Text)
		if _, seen := byText[text]; !seen {
			order = append(order, text)
		}
		byText[text] = append(byText[text], q.ID)
	}

	report := DuplicateReport{Total: len(questions), Unique: len(order)}
	for _, text := range order {
		if ids := byText[text]; len(ids) > 1 {
			report.Duplicates = append(report.Duplicates, Duplicate{Text: text, IDs: ids})
		}
	}

	words := make([]map[string]struct{}, len(order))
	for i, text := range order {
		words[i] = wordSet(text)
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			sim := jaccard(words[i], words[j])
			if sim > SimilarityThreshold && sim < 1.0 {
				report.Similar = append(report.Similar, SimilarPair{
					FirstID:    byText[order[i]][0],
					SecondID:   byText[order[j]][0],
					First:      order[i],
					Second:     order[j],
					Similarity: sim,
				})
			}
		}
	}
	sort.SliceStable(report.Similar, func(a, b int) bool {
		return report.Similar[a].Similarity > report.Similar[b].Similarity
	})
	return report
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if _, ok := b[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Renumber reassigns IDs 1..n in file order and returns the new slice.
func Renumber(questions []Question) []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.ID = i + 1
		out[i] = q
	}
	return out
}

// FlagMode controls how AssignFlags treats flags already present.
type FlagMode int

const (
	FlagsFillMissing FlagMode = iota // only set flags that are absent
	FlagsOverwrite                   // recompute every flag
)

// AssignFlags writes the four topic flags from each question's inferred
// category. It returns the updated questions and the number of true flags
// per flag name.
func AssignFlags(questions []Question, mode FlagMode) ([]Question, map[string]int) {
	counts := map[string]int{
		"isKhaiNiemQuyTac":  0,
		"isVanHoaGiaoThong": 0,
		"isKyThuatLaiXe":    0,
		"isSaHinh":          0,
	}
	out := make([]Question, len(questions))
	for i, q := range questions {
		cat := InferCategory(q)
		set := func(flag **bool, name string, want bool) {
			if *flag == nil || mode == FlagsOverwrite {
				v := want
				*flag = &v
			}
			if **flag {
				counts[name]++
			}
		}
		set(&q.IsKhaiNiemQuyTac, "isKhaiNiemQuyTac", cat == CategoryConcepts)
		set(&q.IsVanHoaGiaoThong, "isVanHoaGiaoThong", cat == CategoryCulture)
		set(&q.IsKyThuatLaiXe, "isKyThuatLaiXe", cat == CategoryTechnique)
		set(&q.IsSaHinh, "isSaHinh", cat == CategorySituation)
		out[i] = q
	}
	return out, counts
}
