// Package storage provides the two Store implementations: an in-memory
// one for development and tests, and a Redis-backed one for deployments
// that want history to survive restarts. Both honor the same contract:
// store-assigned monotonic IDs and persistence-time timestamps.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"apyx-assistant/domain"
)

// DefaultHistoryLimit bounds conversation listings when the caller does
// not ask for a specific limit.
const DefaultHistoryLimit = 50

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu sync.RWMutex

	exchanges map[int]domain.Exchange
	reminders map[int]domain.Reminder
	notes     map[int]domain.Note

	exchangeID int
	reminderID int
	noteID     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		exchanges: make(map[int]domain.Exchange),
		reminders: make(map[int]domain.Reminder),
		notes:     make(map[int]domain.Note),
	}
}

func (s *MemoryStore) AppendExchange(_ context.Context, ex domain.NewExchange) (domain.Exchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.exchangeID++
	record := domain.Exchange{
		ID:        s.exchangeID,
		UserID:    ex.UserID,
		Message:   ex.Message,
		Response:  ex.Response,
		Language:  ex.Language,
		Timestamp: time.Now(),
	}
	s.exchanges[record.ID] = record
	return record, nil
}

func (s *MemoryStore) Exchanges(_ context.Context, limit int) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records := make([]domain.Exchange, 0, len(s.exchanges))
	for _, ex := range s.exchanges {
		records = append(records, ex)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *MemoryStore) CreateReminder(_ context.Context, r domain.NewReminder) (domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminderID++
	record := domain.Reminder{
		ID:           s.reminderID,
		UserID:       r.UserID,
		Text:         r.Text,
		ScheduledFor: r.ScheduledFor,
		IsCompleted:  false,
		CreatedAt:    time.Now(),
	}
	s.reminders[record.ID] = record
	return record, nil
}

func (s *MemoryStore) Reminders(_ context.Context) ([]domain.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ScheduledFor.Before(records[j].ScheduledFor)
	})
	return records, nil
}

func (s *MemoryStore) SetReminderCompleted(_ context.Context, id int, completed bool) (domain.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.reminders[id]
	if !ok {
		return domain.Reminder{}, fmt.Errorf("reminder %d not found", id)
	}
	record.IsCompleted = completed
	s.reminders[id] = record
	return record, nil
}

func (s *MemoryStore) CreateNote(_ context.Context, n domain.NewNote) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.noteID++
	record := domain.Note{
		ID:        s.noteID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: time.Now(),
	}
	s.notes[record.ID] = record
	return record, nil
}

func (s *MemoryStore) Notes(_ context.Context) ([]domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		records = append(records, n)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (s *MemoryStore) DeleteNote(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return false, nil
	}
	delete(s.notes, id)
	return true, nil
}
