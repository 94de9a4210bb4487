// Package achievements tracks the day streak and unlocks badges when an exam
// finishes.
package achievements

// ID identifies an achievement. Values match the stored strings.
type ID string

const (
	FirstPass         ID = "first_pass"
	PerfectScore      ID = "perfect_score"
	SpeedRun          ID = "speed_run"
	LearnFromMistakes ID = "learn_from_mistakes"
	SignMaster        ID = "sign_master"
	NightOwl          ID = "night_owl"
	DiemLietMaster    ID = "diem_liet_master"
	Streak3           ID = "streak_3"
	Streak7           ID = "streak_7"
	Streak30          ID = "streak_30"
)

// AllIDs returns all achievements in display order.
func AllIDs() []ID {
	return []ID{
		FirstPass, PerfectScore, SpeedRun, LearnFromMistakes, SignMaster,
		NightOwl, DiemLietMaster, Streak3, Streak7, Streak30,
	}
}

// Valid reports whether id is a known achievement.
func (id ID) Valid() bool {
	for _, known := range AllIDs() {
		if id == known {
			return true
		}
	}
	return false
}

// DisplayName returns the Vietnamese title.
func (id ID) DisplayName() string {
	switch id {
	case FirstPass:
		return "Lần Đầu Vượt Ải"
	case PerfectScore:
		return "Điểm Tuyệt Đối"
	case SpeedRun:
		return "Tốc Độ Bàn Thờ"
	case LearnFromMistakes:
		return "Học Từ Lỗi Sai"
	case SignMaster:
		return "Vua Biển Báo"
	case NightOwl:
		return "Cú Đêm"
	case DiemLietMaster:
		return "Chuyên Gia Điểm Liệt"
	case Streak3:
		return "Bắt Đầu Nóng Máy"
	case Streak7:
		return "Bền Bỉ Cả Tuần"
	case Streak30:
		return "Thói Quen Vàng"
	default:
		return string(id)
	}
}

// Description explains how the achievement is earned.
func (id ID) Description() string {
	switch id {
	case FirstPass:
		return "Chúc mừng bạn đã vượt qua bài thi đầu tiên!"
	case PerfectScore:
		return "Đạt điểm tuyệt đối trong một bài thi."
	case SpeedRun:
		return "Hoàn thành một bài thi trong vòng 5 phút."
	case LearnFromMistakes:
		return "Vượt qua bài thi ôn tập các câu bạn đã trả lời sai."
	case SignMaster:
		return "Trả lời đúng 100% câu hỏi biển báo trong bài thi ĐẠT."
	case NightOwl:
		return "Hoàn thành một bài thi trong khoảng 0-4h sáng."
	case DiemLietMaster:
		return "Vượt qua bài thi câu điểm liệt."
	case Streak3:
		return "Hoàn thành bài thi trong 3 ngày liên tiếp."
	case Streak7:
		return "Hoàn thành bài thi trong 7 ngày liên tiếp."
	case Streak30:
		return "Hoàn thành bài thi trong 30 ngày liên tiếp."
	default:
		return ""
	}
}

// Icon returns the display icon for the achievement.
func (id ID) Icon() string {
	switch id {
	case FirstPass:
		return "🏁"
	case PerfectScore:
		return "💯"
	case SpeedRun:
		return "⚡"
	case LearnFromMistakes:
		return "📘"
	case SignMaster:
		return "🚧"
	case NightOwl:
		return "🌙"
	case DiemLietMaster:
		return "🛡️"
	case Streak3:
		return "🔥"
	case Streak7:
		return "🏋️"
	case Streak30:
		return "🏆"
	default:
		return "✦"
	}
}

// Strings converts ids for storage.
func Strings(ids []ID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// FromStrings converts stored ids, dropping unknown values.
func FromStrings(raw []string) []ID {
	out := make([]ID, 0, len(raw))
	for _, s := range raw {
		if id := ID(s); id.Valid() {
			out = append(out, id)
		}
	}
	return out
}
