package services

import (
	"context"
	"net/http"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

// Coordinate is a point on the farm map.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FarmField is one cultivated plot.
type FarmField struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Crop              string  `json:"crop"`
	Area              float64 `json:"area"`
	Health            float64 `json:"health"`
	Moisture          float64 `json:"moisture"`
	DaysSincePlanting *int    `json:"daysSincePlanting"`
	Status            string  `json:"status"`
	PlantedAt         *string `json:"plantedAt"`
}

// JournalEntry is a dated field note.
type JournalEntry struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Note      string `json:"note"`
	Type      string `json:"type"`
	FieldName string `json:"fieldName,omitempty"`
}

// FarmOverview is the /farm/overview payload.
type FarmOverview struct {
	Fields  []FarmField    `json:"fields"`
	Journal []JournalEntry `json:"journal"`
	Map     struct {
		Center  Coordinate   `json:"center"`
		Polygon []Coordinate `json:"polygon"`
	} `json:"map"`
	FarmSummary struct {
		FarmName         string  `json:"farmName"`
		FarmLocation     string  `json:"farmLocation"`
		FarmSizeHectares float64 `json:"farmSizeHectares"`
	} `json:"farmSummary"`
}

// NewField is the body of POST /farm/fields.
type NewField struct {
	Name         string   `json:"name"`
	Crop         string   `json:"crop"`
	AreaHectares *float64 `json:"areaHectares,omitempty"`
	PlantedAt    string   `json:"plantedAt,omitempty"`
}

// FieldUpdate is a partial field. Nil fields are not sent.
type FieldUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Crop         *string  `json:"crop,omitempty"`
	AreaHectares *float64 `json:"areaHectares,omitempty"`
	PlantedAt    *string  `json:"plantedAt,omitempty"`
}

// FieldResponse wraps a created field.
type FieldResponse struct {
	Field FarmField `json:"field"`
}

// FieldUpdateResponse is returned by PUT /farm/fields/{id}.
type FieldUpdateResponse struct {
	Message string    `json:"message"`
	Field   FarmField `json:"field"`
}

// NewJournalEntry is the body of POST /farm/journal.
type NewJournalEntry struct {
	Note        string `json:"note"`
	Type        string `json:"type,omitempty"`
	FarmFieldID *int   `json:"farmFieldId,omitempty"`
}

// JournalEntryUpdate is a partial journal entry.
type JournalEntryUpdate struct {
	Note *string `json:"note,omitempty"`
	Type *string `json:"type,omitempty"`
}

// JournalEntryResponse wraps a created entry.
type JournalEntryResponse struct {
	Entry JournalEntry `json:"entry"`
}

// FarmService covers /farm.
type FarmService struct {
	client *apiclient.Client
}

// Overview returns fields, journal entries and the map region.
func (s *FarmService) Overview(ctx context.Context, token string) (*FarmOverview, error) {
	return apiclient.Request[FarmOverview](ctx, s.client, "/farm/overview", apiclient.RequestOptions{Token: token})
}

// AddField creates a field.
func (s *FarmService) AddField(ctx context.Context, token string, field NewField) (*FieldResponse, error) {
	return apiclient.Request[FieldResponse](ctx, s.client, "/farm/fields", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
		Body:   field,
	})
}

// UpdateField changes a field.
func (s *FarmService) UpdateField(ctx context.Context, token, fieldID string, update FieldUpdate) (*FieldUpdateResponse, error) {
	return apiclient.Request[FieldUpdateResponse](ctx, s.client, "/farm/fields/"+escape(fieldID), apiclient.RequestOptions{
		Method: http.MethodPut,
		Token:  token,
		Body:   update,
	})
}

// DeleteField removes a field.
func (s *FarmService) DeleteField(ctx context.Context, token, fieldID string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/farm/fields/"+escape(fieldID), apiclient.RequestOptions{
		Method: http.MethodDelete,
		Token:  token,
	})
}

// AddJournalEntry adds a journal entry.
func (s *FarmService) AddJournalEntry(ctx context.Context, token string, entry NewJournalEntry) (*JournalEntryResponse, error) {
	return apiclient.Request[JournalEntryResponse](ctx, s.client, "/farm/journal", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
		Body:   entry,
	})
}

// UpdateJournalEntry changes a journal entry.
func (s *FarmService) UpdateJournalEntry(ctx context.Context, token, entryID string, update JournalEntryUpdate) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/farm/journal/"+escape(entryID), apiclient.RequestOptions{
		Method: http.MethodPut,
		Token:  token,
		Body:   update,
	})
}

// DeleteJournalEntry removes a journal entry.
func (s *FarmService) DeleteJournalEntry(ctx context.Context, token, entryID string) (*MessageResponse, error) {
	return apiclient.Request[MessageResponse](ctx, s.client, "/farm/journal/"+escape(entryID), apiclient.RequestOptions{
		Method: http.MethodDelete,
		Token:  token,
	})
}
