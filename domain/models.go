package domain

import "time"

// ChatRequest is one user turn arriving at the orchestrator.
type ChatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// ChatReply is always produced; the orchestrator has no failure exit.
type ChatReply struct {
	Response string `json:"response"`
	Language string `json:"language"`
}

// Exchange is one persisted (message, response) pair. IDs are assigned
// by the store and monotonic; records are never mutated afterwards.
type Exchange struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"userId"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Language  string    `json:"language"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExchange carries the store-independent fields of an Exchange.
type NewExchange struct {
	UserID   *int   `json:"userId"`
	Message  string `json:"message"`
	Response string `json:"response"`
	Language string `json:"language"`
}

type Reminder struct {
	ID           int       `json:"id"`
	UserID       *int      `json:"userId"`
	Text         string    `json:"text"`
	ScheduledFor time.Time `json:"scheduledFor"`
	IsCompleted  bool      `json:"isCompleted"`
	CreatedAt    time.Time `json:"createdAt"`
}

type NewReminder struct {
	UserID       *int      `json:"userId"`
	Text         string    `json:"text"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

type Note struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewNote struct {
	UserID  *int   `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ReminderDraft is the structured-extraction result for a reminder.
type ReminderDraft struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ScheduledFor time.Time `json:"scheduledFor"`
}

// NoteDraft is the structured-extraction result for a note.
type NoteDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
