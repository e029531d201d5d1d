package app

import (
	"context"

	"github.com/agroaide/agroaide-client/internal/services"
)

// mutate runs fn with the session token, applies the auth guard and drops
// the cache entries the change makes stale.
func mutate[T any](ctx context.Context, a *App, fn func(context.Context, string) (*T, error), stale ...string) (*T, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}
	v, err := fn(ctx, token)
	if err != nil {
		return nil, a.Guard(err)
	}
	a.cache.Invalidate(stale...)
	return v, nil
}

// AddField creates a field and refreshes farm and dashboard reads.
func (a *App) AddField(ctx context.Context, field services.NewField) (*services.FieldResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.FieldResponse, error) {
		return a.api.Farm.AddField(ctx, token, field)
	}, keyFarm, keyDashboard)
}

// UpdateField changes a field and refreshes farm and dashboard reads.
func (a *App) UpdateField(ctx context.Context, id string, u services.FieldUpdate) (*services.FieldUpdateResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.FieldUpdateResponse, error) {
		return a.api.Farm.UpdateField(ctx, token, id, u)
	}, keyFarm, keyDashboard)
}

// DeleteField removes a field and refreshes farm and dashboard reads.
func (a *App) DeleteField(ctx context.Context, id string) (*services.MessageResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.MessageResponse, error) {
		return a.api.Farm.DeleteField(ctx, token, id)
	}, keyFarm, keyDashboard)
}

// AddJournalEntry adds a journal entry.
func (a *App) AddJournalEntry(ctx context.Context, entry services.NewJournalEntry) (*services.JournalEntryResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.JournalEntryResponse, error) {
		return a.api.Farm.AddJournalEntry(ctx, token, entry)
	}, keyFarm)
}

// UpdateJournalEntry changes a journal entry.
func (a *App) UpdateJournalEntry(ctx context.Context, id string, u services.JournalEntryUpdate) (*services.MessageResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.MessageResponse, error) {
		return a.api.Farm.UpdateJournalEntry(ctx, token, id, u)
	}, keyFarm)
}

// DeleteJournalEntry removes a journal entry.
func (a *App) DeleteJournalEntry(ctx context.Context, id string) (*services.MessageResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.MessageResponse, error) {
		return a.api.Farm.DeleteJournalEntry(ctx, token, id)
	}, keyFarm)
}

// CreateTask schedules a task and refreshes calendar and dashboard reads.
func (a *App) CreateTask(ctx context.Context, task services.NewTask) (*services.TaskResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.TaskResponse, error) {
		return a.api.Calendar.CreateTask(ctx, token, task)
	}, keyCalendar, keyDashboard)
}

// UpdateTask changes a task.
func (a *App) UpdateTask(ctx context.Context, id string, u services.TaskUpdate) (*services.MessageResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.MessageResponse, error) {
		return a.api.Calendar.UpdateTask(ctx, token, id, u)
	}, keyCalendar, keyDashboard)
}

// DeleteTask removes a task.
func (a *App) DeleteTask(ctx context.Context, id string) (*services.MessageResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.MessageResponse, error) {
		return a.api.Calendar.DeleteTask(ctx, token, id)
	}, keyCalendar, keyDashboard)
}

// CompleteTask sets a task's completed flag.
func (a *App) CompleteTask(ctx context.Context, id string, completed bool) (*services.TaskCompletion, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.TaskCompletion, error) {
		return a.api.Calendar.MarkTaskComplete(ctx, token, id, completed)
	}, keyCalendar, keyDashboard)
}

// MarkNotificationRead marks one notification as read.
func (a *App) MarkNotificationRead(ctx context.Context, id int) (*services.MessageResponse, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.MessageResponse, error) {
		return a.api.Notifications.MarkRead(ctx, token, id)
	}, keyNotifications, keyDashboard)
}

// MarkAllNotificationsRead marks every notification as read.
func (a *App) MarkAllNotificationsRead(ctx context.Context) (*services.MessageResponse, error) {
	return mutate(ctx, a, a.api.Notifications.MarkAllRead, keyNotifications, keyDashboard)
}

// Chat sends message to the advisor. Replies are never cached.
func (a *App) Chat(ctx context.Context, message string) (*services.ChatReply, error) {
	return mutate(ctx, a, func(ctx context.Context, token string) (*services.ChatReply, error) {
		return a.api.Advisor.Chat(ctx, token, message)
	})
}

// RequestExport asks the backend to email a data export.
func (a *App) RequestExport(ctx context.Context) (*services.MessageResponse, error) {
	return mutate(ctx, a, a.api.System.RequestExport)
}
