package lesson

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/wordich/pkg/models"
)

type recKey struct {
	userID int64
	wordID int64
}

// memStore is an in-memory Store used by the lesson tests.
type memStore struct {
	users   map[int64]*models.User
	words   []models.Word
	records map[recKey]*models.MasteryRecord
	stats   map[int64]*models.UserStats

	commitErr error
	commits   int
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[int64]*models.User),
		records: make(map[recKey]*models.MasteryRecord),
		stats:   make(map[int64]*models.UserStats),
	}
}

func (m *memStore) GetUser(_ context.Context, userID int64) (*models.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %d not found", userID)
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) DueRecords(_ context.Context, userID int64, now time.Time, limit int) ([]models.MasteryRecord, error) {
	var due []models.MasteryRecord
	for _, rec := range m.records {
		if rec.UserID == userID && rec.Due(now) {
			due = append(due, *rec)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReview.Equal(due[j].NextReview) {
			return due[i].NextReview.Before(due[j].NextReview)
		}
		return due[i].Stage < due[j].Stage
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *memStore) WordsByIDs(_ context.Context, ids []int64) ([]models.Word, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.Word
	for _, w := range m.words {
		if want[w.ID] {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memStore) NewWords(_ context.Context, userID int64, level string, limit int) ([]models.Word, error) {
	maxRank := models.LevelRank(level)
	var out []models.Word
	for _, w := range m.words {
		if _, seen := m.records[recKey{userID, w.ID}]; seen {
			continue
		}
		if models.LevelRank(w.Level) > maxRank {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) GetRecord(_ context.Context, userID, wordID int64) (*models.MasteryRecord, error) {
	rec, ok := m.records[recKey{userID, wordID}]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *memStore) CreateRecord(_ context.Context, rec *models.MasteryRecord) error {
	cp := *rec
	m.records[recKey{rec.UserID, rec.WordID}] = &cp
	return nil
}

func (m *memStore) GetOrCreateStats(_ context.Context, userID int64) (*models.UserStats, error) {
	s, ok := m.stats[userID]
	if !ok {
		s = &models.UserStats{UserID: userID}
		m.stats[userID] = s
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) CommitStep(_ context.Context, step StepCommit) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.commits++
	if step.Record != nil {
		cp := *step.Record
		m.records[recKey{cp.UserID, cp.WordID}] = &cp
	}
	if step.Stats != nil {
		cp := *step.Stats
		m.stats[cp.UserID] = &cp
	}
	if step.User != nil {
		cp := *step.User
		m.users[cp.ID] = &cp
	}
	return nil
}

func (m *memStore) DueTodayCount(_ context.Context, userID int64, before time.Time) (int, error) {
	n := 0
	for _, rec := range m.records {
		if rec.UserID == userID && rec.NextReview.Before(before) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) LevelCounts(_ context.Context, userID int64) (map[string]LevelCount, error) {
	out := make(map[string]LevelCount)
	for _, w := range m.words {
		lc := out[w.Level]
		lc.Total++
		if rec, ok := m.records[recKey{userID, w.ID}]; ok && rec.Stage >= 3 {
			lc.Learned++
		}
		out[w.Level] = lc
	}
	return out, nil
}
