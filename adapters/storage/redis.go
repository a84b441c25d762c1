package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"apyx-assistant/domain"
)

const (
	exchangeSeqKey  = "apyx:seq:exchanges"
	exchangeHashKey = "apyx:exchanges"
	reminderSeqKey  = "apyx:seq:reminders"
	reminderHashKey = "apyx:reminders"
	noteSeqKey      = "apyx:seq:notes"
	noteHashKey     = "apyx:notes"
)

// RedisStore persists records as JSON values in per-collection hashes.
// IDs come from INCR counters, which keeps allocation atomic across
// concurrent clients.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) nextID(ctx context.Context, seqKey string) (int, error) {
	id, err := s.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocating id: %w", err)
	}
	return int(id), nil
}

func (s *RedisStore) put(ctx context.Context, hashKey string, id int, record any) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	if err := s.client.HSet(ctx, hashKey, strconv.Itoa(id), payload).Err(); err != nil {
		return fmt.Errorf("storing record: %w", err)
	}
	return nil
}

func (s *RedisStore) AppendExchange(ctx context.Context, ex domain.NewExchange) (domain.Exchange, error) {
	id, err := s.nextID(ctx, exchangeSeqKey)
	if err != nil {
		return domain.Exchange{}, err
	}
	record := domain.Exchange{
		ID:        id,
		UserID:    ex.UserID,
		Message:   ex.Message,
		Response:  ex.Response,
		Language:  ex.Language,
		Timestamp: time.Now(),
	}
	if err := s.put(ctx, exchangeHashKey, id, record); err != nil {
		return domain.Exchange{}, err
	}
	return record, nil
}

func (s *RedisStore) Exchanges(ctx context.Context, limit int) ([]domain.Exchange, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	raw, err := s.client.HGetAll(ctx, exchangeHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing exchanges: %w", err)
	}
	records := make([]domain.Exchange, 0, len(raw))
	for _, payload := range raw {
		var ex domain.Exchange
		if err := json.Unmarshal([]byte(payload), &ex); err != nil {
			return nil, fmt.Errorf("decoding exchange: %w", err)
		}
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

func (s *RedisStore) CreateReminder(ctx context.Context, r domain.NewReminder) (domain.Reminder, error) {
	id, err := s.nextID(ctx, reminderSeqKey)
	if err != nil {
		return domain.Reminder{}, err
	}
	record := domain.Reminder{
		ID:           id,
		UserID:       r.UserID,
		Text:         r.Text,
		ScheduledFor: r.ScheduledFor,
		IsCompleted:  false,
		CreatedAt:    time.Now(),
	}
	if err := s.put(ctx, reminderHashKey, id, record); err != nil {
		return domain.Reminder{}, err
	}
	return record, nil
}

func (s *RedisStore) Reminders(ctx context.Context) ([]domain.Reminder, error) {
	raw, err := s.client.HGetAll(ctx, reminderHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	records := make([]domain.Reminder, 0, len(raw))
	for _, payload := range raw {
		var r domain.Reminder
		if err := json.Unmarshal([]byte(payload), &r); err != nil {
			return nil, fmt.Errorf("decoding reminder: %w", err)
		}
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ScheduledFor.Before(records[j].ScheduledFor)
	})
	return records, nil
}

func (s *RedisStore) SetReminderCompleted(ctx context.Context, id int, completed bool) (domain.Reminder, error) {
	payload, err := s.client.HGet(ctx, reminderHashKey, strconv.Itoa(id)).Result()
	if err == redis.Nil {
		return domain.Reminder{}, fmt.Errorf("reminder %d not found", id)
	}
	if err != nil {
		return domain.Reminder{}, fmt.Errorf("loading reminder: %w", err)
	}
	var record domain.Reminder
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		return domain.Reminder{}, fmt.Errorf("decoding reminder: %w", err)
	}
	record.IsCompleted = completed
	if err := s.put(ctx, reminderHashKey, id, record); err != nil {
		return domain.Reminder{}, err
	}
	return record, nil
}

func (s *RedisStore) CreateNote(ctx context.Context, n domain.NewNote) (domain.Note, error) {
	id, err := s.nextID(ctx, noteSeqKey)
	if err != nil {
		return domain.Note{}, err
	}
	record := domain.Note{
		ID:        id,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: time.Now(),
	}
	if err := s.put(ctx, noteHashKey, id, record); err != nil {
		return domain.Note{}, err
	}
	return record, nil
}

func (s *RedisStore) Notes(ctx context.Context) ([]domain.Note, error) {
	raw, err := s.client.HGetAll(ctx, noteHashKey).Result()
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	records := make([]domain.Note, 0, len(raw))
	for _, payload := range raw {
		var n domain.Note
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			return nil, fmt.Errorf("decoding note: %w", err)
		}
		records = append(records, n)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})
	return records, nil
}

func (s *RedisStore) DeleteNote(ctx context.Context, id int) (bool, error) {
	removed, err := s.client.HDel(ctx, noteHashKey, strconv.Itoa(id)).Result()
	if err != nil {
		return false, fmt.Errorf("deleting note: %w", err)
	}
	return removed > 0, nil
}
