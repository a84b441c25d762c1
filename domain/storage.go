package domain

import "context"

// Store keeps the assistant's records. Implementations assign IDs
// monotonically per collection and stamp timestamps at persistence time.
// The chat flow only ever appends exchanges; everything else is the thin
// CRUD surface of the side features.
type Store interface {
	AppendExchange(ctx context.Context, ex NewExchange) (Exchange, error)
	// Exchanges lists persisted exchanges newest first, at most limit.
	Exchanges(ctx context.Context, limit int) ([]Exchange, error)

	CreateReminder(ctx context.Context, r NewReminder) (Reminder, error)
	// Reminders lists reminders ordered by scheduled time, soonest first.
	Reminders(ctx context.Context) ([]Reminder, error)
	SetReminderCompleted(ctx context.Context, id int, completed bool) (Reminder, error)

	CreateNote(ctx context.Context, n NewNote) (Note, error)
	// Notes lists notes newest first.
	Notes(ctx context.Context) ([]Note, error)
	DeleteNote(ctx context.Context, id int) (bool, error)
}
