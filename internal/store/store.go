// Package store persists wrong answers, exam history, achievements, the day
// streak and the exam goal date on top of a key-value backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Store is the single owner of durable state. Reads never fail: a missing,
// corrupt or unreadable value yields the zero value and a warning.
type Store struct {
	kv  KV
	log zerolog.Logger
}

// New creates a Store over kv.
func New(kv KV, log zerolog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log.With().Str("component", "store").Logger(),
	}
}

// KV returns the underlying backend.
func (s *Store) KV() KV {
	return s.kv
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.kv.Close()
}

func (s *Store) readRaw(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("read failed, using default")
		return "", false
	}
	return v, ok
}

// readJSON decodes key into dst and reports whether a valid value was found.
func (s *Store) readJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := s.readRaw(ctx, key)
	if !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt value discarded")
		return false
	}
	return true
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(ctx, key, string(data))
}

// --- wrong answers ---

// WrongAnswers returns the stored wrong-answer records, one per question.
func (s *Store) WrongAnswers(ctx context.Context) []WrongAnswerRecord {
	var recs []WrongAnswerRecord
	if !s.readJSON(ctx, KeyWrongAnswers, &recs) {
		return []WrongAnswerRecord{}
	}
	return dedupeWrong(recs)
}

// WrongAnswerIDs returns the question IDs with a stored wrong answer.
func (s *Store) WrongAnswerIDs(ctx context.Context) []int {
	recs := s.WrongAnswers(ctx)
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.QuestionID
	}
	return ids
}

// UpsertWrongAnswer replaces any record for the same question with rec.
func (s *Store) UpsertWrongAnswer(ctx context.Context, rec WrongAnswerRecord) error {
	return s.MergeWrongAnswers(ctx, []WrongAnswerRecord{rec}, nil)
}

// ClearWrongAnswer removes the record for questionID, if any.
func (s *Store) ClearWrongAnswer(ctx context.Context, questionID int) error {
	return s.MergeWrongAnswers(ctx, nil, []int{questionID})
}

// MergeWrongAnswers applies a batch in one write: records in wrong replace
// existing ones for their question, and questions in correct are removed.
// Nothing is written when the batch changes nothing.
func (s *Store) MergeWrongAnswers(ctx context.Context, wrong []WrongAnswerRecord, correct []int) error {
	if len(wrong) == 0 && len(correct) == 0 {
		return nil
	}
	drop := make(map[int]bool, len(wrong)+len(correct))
	for _, id := range correct {
		drop[id] = true
	}
	for _, r := range wrong {
		drop[r.QuestionID] = true
	}

	existing := s.WrongAnswers(ctx)
	merged := make([]WrongAnswerRecord, 0, len(existing)+len(wrong))
	removed := 0
	for _, r := range existing {
		if drop[r.QuestionID] {
			removed++
			continue
		}
		merged = append(merged, r)
	}
	if len(wrong) == 0 && removed == 0 {
		return nil
	}
	merged = append(merged, dedupeWrong(wrong)...)

	if err := s.writeJSON(ctx, KeyWrongAnswers, merged); err != nil {
		return fmt.Errorf("save wrong answers: %w", err)
	}
	return nil
}

// ClearWrongAnswers removes every wrong-answer record.
func (s *Store) ClearWrongAnswers(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyWrongAnswers)
}

// dedupeWrong keeps the last record per question, in order of last write.
func dedupeWrong(recs []WrongAnswerRecord) []WrongAnswerRecord {
	last := make(map[int]int, len(recs))
	for i, r := range recs {
		last[r.QuestionID] = i
	}
	out := make([]WrongAnswerRecord, 0, len(last))
	for i, r := range recs {
		if last[r.QuestionID] == i {
			out = append(out, r)
		}
	}
	return out
}

// --- exam history ---

// History returns completed exams, newest first.
func (s *Store) History(ctx context.Context) []HistoryEntry {
	var entries []HistoryEntry
	if !s.readJSON(ctx, KeyExamHistory, &entries) {
		return []HistoryEntry{}
	}
	return entries
}

// AppendHistory records e as the newest exam.
func (s *Store) AppendHistory(ctx context.Context, e HistoryEntry) error {
	entries := append([]HistoryEntry{e}, s.History(ctx)...)
	if err := s.writeJSON(ctx, KeyExamHistory, entries); err != nil {
		return fmt.Errorf("save exam history: %w", err)
	}
	return nil
}

// ClearHistory deletes all exam history.
func (s *Store) ClearHistory(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyExamHistory)
}

// TakeNewAchievements returns the newly unlocked achievements recorded on the
// newest history entry and clears them so they are reported only once.
func (s *Store) TakeNewAchievements(ctx context.Context) ([]string, error) {
	entries := s.History(ctx)
	if len(entries) == 0 || len(entries[0].NewAchievements) == 0 {
		return nil, nil
	}
	ids := entries[0].NewAchievements
	entries[0].NewAchievements = nil
	if err := s.writeJSON(ctx, KeyExamHistory, entries); err != nil {
		return nil, fmt.Errorf("save exam history: %w", err)
	}
	return ids, nil
}

// --- achievements & streak ---

// Achievements returns the unlocked achievement IDs in unlock order.
func (s *Store) Achievements(ctx context.Context) []string {
	var ids []string
	if !s.readJSON(ctx, KeyAchievements, &ids) {
		return []string{}
	}
	return ids
}

// SaveAchievements replaces the unlocked set.
func (s *Store) SaveAchievements(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	if err := s.writeJSON(ctx, KeyAchievements, ids); err != nil {
		return fmt.Errorf("save achievements: %w", err)
	}
	return nil
}

// Streak returns the stored streak. An unparseable date is treated as absent
// and an unparseable or negative count as zero.
func (s *Store) Streak(ctx context.Context) StreakState {
	var st StreakState
	if raw, ok := s.readRaw(ctx, KeyLastExamDate); ok {
		raw = strings.TrimSpace(raw)
		if _, err := time.Parse(DateLayout, raw); err == nil {
			st.LastDate = raw
		} else {
			s.log.Warn().Str("key", KeyLastExamDate).Str("value", raw).Msg("corrupt value discarded")
		}
	}
	if raw, ok := s.readRaw(ctx, KeyStreakCount); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 {
			s.log.Warn().Str("key", KeyStreakCount).Str("value", raw).Msg("corrupt value discarded")
			n = 0
		}
		st.Count = n
	}
	return st
}

// SaveStreak persists the streak counter and last activity date.
func (s *Store) SaveStreak(ctx context.Context, st StreakState) error {
	if err := s.kv.Set(ctx, KeyLastExamDate, st.LastDate); err != nil {
		return fmt.Errorf("save last exam date: %w", err)
	}
	if err := s.kv.Set(ctx, KeyStreakCount, strconv.Itoa(st.Count)); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}

// --- exam goal ---

// GoalDate returns the planned exam date in loc.
func (s *Store) GoalDate(ctx context.Context, loc *time.Location) (time.Time, bool) {
	raw, ok := s.readRaw(ctx, KeyExamGoalDate)
	if !ok {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		s.log.Warn().Str("key", KeyExamGoalDate).Str("value", raw).Msg("corrupt value discarded")
		return time.Time{}, false
	}
	return d, true
}

// SetGoalDate stores the calendar date of d.
func (s *Store) SetGoalDate(ctx context.Context, d time.Time) error {
	if err := s.kv.Set(ctx, KeyExamGoalDate, d.Format(DateLayout)); err != nil {
		return fmt.Errorf("save goal date: %w", err)
	}
	return nil
}

// ClearGoalDate removes the goal date.
func (s *Store) ClearGoalDate(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyExamGoalDate)
}

// Reset deletes everything the store owns.
func (s *Store) Reset(ctx context.Context) error {
	for _, k := range AllKeys() {
		if err := s.kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("reset %s: %w", k, err)
		}
	}
	s.log.Info().Msg("all progress reset")
	return nil
}
