package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// CalendarTask is one scheduled farm task.
type CalendarTask struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     *string `json:"description"`
	ScheduledDate   string  `json:"scheduledDate"`
	Period          string  `json:"period"`
	DurationMinutes int     `json:"durationMinutes"`
	Impact          string  `json:"impact"`
	Completed       bool    `json:"completed"`
	CompletedAt     *string `json:"completedAt"`
}

// MarkedDate flags a day that has tasks.
type MarkedDate struct {
	Marked   bool   `json:"marked"`
	DotColor string `json:"dotColor"`
}

// CalendarResponse is the /calendar payload.
type CalendarResponse struct {
	Tasks        []CalendarTask        `json:"tasks"`
	DayPlan      []CalendarTask        `json:"dayPlan"`
	MarkedDates  map[string]MarkedDate `json:"markedDates"`
	SelectedDate string                `json:"selectedDate"`
}

// NewTask is the body of POST /calendar/tasks.
type NewTask struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	ScheduledDate   string `json:"scheduledDate"`
	Period          string `json:"period,omitempty"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Impact          string `json:"impact,omitempty"`
}

// TaskUpdate is a partial task.
type TaskUpdate struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	ScheduledDate   *string `json:"scheduledDate,omitempty"`
	Period          *string `json:"period,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Impact          *string `json:"impact,omitempty"`
}

// TaskResponse wraps a created task.
type TaskResponse struct {
	Task CalendarTask `json:"task"`
}

// TaskCompletion is returned when a task is toggled.
type TaskCompletion struct {
	TaskID    string `json:"taskId"`
	Completed bool   `json:"completed"`
	Message   string `json:"message"`
}

// CalendarService covers /calendar.
type CalendarService struct {
	client *apiclient.Client
}

// Calendar returns tasks around date (YYYY-MM-DD). An empty date lets the
// backend pick today.
func (s *CalendarService) Calendar(ctx context.Context, token, date string) (*CalendarResponse, error) {
	opts := apiclient.RequestOptions{Token: token}
	if date != "" {
		opts.Query = url.Values{"date": {date}}
	}
	return apiclient.Request[CalendarResponse](ctx, s.client, "/calendar", opts)
}

// CreateTask schedules a new task.
func (s *CalendarService) CreateTask(ctx context.Context, token string, task NewTask) (*TaskResponse, error) {
	return apiclient.Request[TaskResponse](ctx, s.client, "/calendar/tasks", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
		Body:   task,
	})
}

// UpdateTask changes an existing task.
func (s *CalendarService) UpdateTask(ctx context.Context, token, taskID string, update TaskUpdate) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/calendar/tasks/"+escape(taskID), apiclient.RequestOptions{
		Method: http.MethodPut,
		Token:  token,
		Body:   update,
	})
}

// DeleteTask removes a task.
func (s *CalendarService) DeleteTask(ctx context.Context, token, taskID string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/calendar/tasks/"+escape(taskID), apiclient.RequestOptions{
		Method: http.MethodDelete,
		Token:  token,
	})
}

// MarkTaskComplete sets the completion flag of a task.
func (s *CalendarService) MarkTaskComplete(ctx context.Context, token, taskID string, completed bool) (*TaskCompletion, error) {
	return apiclient.Request[TaskCompletion](ctx, s.client, "/calendar/tasks/"+escape(taskID)+"/complete", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
		Body:   map[string]bool{"completed": completed},
	})
}
