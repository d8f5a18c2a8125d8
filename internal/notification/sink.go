package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nbataa/agentmart/pkg/clients"
	"go.uber.org/zap"
)

// HTTPSink posts events to the push gateway that fans them out to sockets.
type HTTPSink struct {
	url    string
	client clients.HTTPClientI
}

func NewHTTPSink(gatewayURL string, client clients.HTTPClientI) *HTTPSink {
	return &HTTPSink{
		url:    gatewayURL + "/api/events",
		client: client,
	}
}

func (s *HTTPSink) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("can't marshal event: %w", err)
	}

	statusCode, _, err := s.client.Post(s.url, nil, body)
	if err != nil {
		return fmt.Errorf("can't post event: %w", err)
	}
	if statusCode >= http.StatusBadRequest {
		return fmt.Errorf("push gateway returned status %d", statusCode)
	}
	return nil
}

// LogSink records events in the service log; the default when no push
// gateway is configured.
type LogSink struct{}

func (LogSink) Send(ctx context.Context, event Event) error {
	zap.L().Info("notification event",
		zap.String("id", event.ID.String()),
		zap.String("type", event.Type),
		zap.Int("accountID", event.AccountID))
	return nil
}
