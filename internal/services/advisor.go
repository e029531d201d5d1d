package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/agroaide/agroaide-client/internal/apiclient"
)

const (
	chatRate  = rate.Limit(1) // messages per second
	chatBurst = 3
)

// ChatReply is the advisor's answer.
type ChatReply struct {
	Reply string `json:"reply"`
}

// SuggestionsResponse lists canned prompts.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// AdvisorService covers /advisor. Chat is throttled client-side.
type AdvisorService struct {
	client  *apiclient.Client
	limiter *rate.Limiter
}

// NewAdvisorService returns an AdvisorService. A nil limiter allows one
// chat message per second with a burst of three.
func NewAdvisorService(client *apiclient.Client, limiter *rate.Limiter) *AdvisorService {
	if limiter == nil {
		limiter = rate.NewLimiter(chatRate, chatBurst)
	}
	return &AdvisorService{client: client, limiter: limiter}
}

// Chat waits for the throttle and sends message to the advisor.
func (s *AdvisorService) Chat(ctx context.Context, token, message string) (*ChatReply, error) {
	start := time.Now()
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("advisor chat throttled after %s: %w", time.Since(start).Round(time.Millisecond), err)
	}
	return apiclient.Request[ChatReply](ctx, s.client, "/advisor/chat", apiclient.RequestOptions{
		Method: http.MethodPost,
		Token:  token,
		Body:   map[string]string{"message": message},
	})
}

// Suggestions returns prompt suggestions for the advisor chat.
func (s *AdvisorService) Suggestions(ctx context.Context, token string) (*SuggestionsResponse, error) {
	return apiclient.Request[SuggestionsResponse](ctx, s.client, "/advisor/suggestions", apiclient.RequestOptions{Token: token})
}
