package services

import (
	"context"
	"net/http"
	"strconv"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// Notification is one in-app notification.
type Notification struct {
	ID        int            `json:"id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	CreatedAt string         `json:"createdAt"`
	Data      map[string]any `json:"data"`
}

// NotificationsResponse is the /notifications payload.
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// NotificationService covers /notifications.
type NotificationService struct {
	client *apiclient.Client
}

// List returns the farmer's notifications.
func (s *NotificationService) List(ctx context.Context, token string) (*NotificationsResponse, error) {
	return apiclient.Request[NotificationsResponse](ctx, s.client, "/notifications", apiclient.RequestOptions{Token: token})
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, token string, id int) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/notifications/"+strconv.Itoa(id)+"/read", apiclient.RequestOptions{
		Method: http.MethodPatch,
		Token:  token,
	})
}

// MarkAllRead marks every notification as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, token string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/notifications/read-all", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
	})
}
