package services

import (
	"context"
	"net/http"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// SyncResult is returned by the offline sync endpoint.
type SyncResult struct {
	SyncedAt string `json:"syncedAt"`
	Message  string `json:"message"`
}

// SupportLink is a help-center entry.
type SupportLink struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Message string `json:"message"`
}

// SupportLinksResponse is the /system/support-links payload.
type SupportLinksResponse struct {
	Links []SupportLink `json:"links"`
}

// SystemService covers /system.
type SystemService struct {
	client *apiclient.Client
}

// SyncOffline asks the backend to prepare the offline brief.
func (s *SystemService) SyncOffline(ctx context.Context, token string) (*SyncResult, error) {
	return apiclient.Request[SyncResult](ctx, s.client, "/system/sync-offline", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
	})
}

// RequestExport asks the backend to email a data export.
func (s *SystemService) RequestExport(ctx context.Context, token string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/system/export-request", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
	})
}

// SupportLinks returns help and contact links.
func (s *SystemService) SupportLinks(ctx context.Context, token string) (*SupportLinksResponse, error) {
	return apiclient.Request[SupportLinksResponse](ctx, s.client, "/system/support-links", apiclient.RequestOptions{Token: token})
}
