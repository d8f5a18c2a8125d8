package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event types emitted at lifecycle trigger points.
const (
	EventOrderClaimed     = "order_claimed"
	EventReportSubmitted  = "report_submitted"
	EventPaymentVerified  = "payment_verified"
	EventPaymentCancelled = "payment_cancelled"
	EventTrackCodeSet     = "track_code_set"
	EventRewardApproved   = "reward_approved"
	EventRewardRejected   = "reward_rejected"
)

type Event struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	AccountID int            `json:"account_id"`
	OrderID   *int           `json:"order_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Dispatcher delivers lifecycle events to interested parties. Delivery is
// fire-and-forget: the core never depends on it succeeding.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventType string, accountID int, orderID *int, payload map[string]any)
}

// Sink is the transport an event is handed to (push gateway, log).
type Sink interface {
	Send(ctx context.Context, event Event) error
}

const sendTimeout = 5 * time.Second

type Service struct {
	sink Sink
	pool *WorkerPool
}

func New(sink Sink) *Service {
	return &Service{
		sink: sink,
		pool: NewWorkerPool(10),
	}
}

func (s *Service) Dispatch(ctx context.Context, eventType string, accountID int, orderID *int, payload map[string]any) {
	event := Event{
		ID:        uuid.New(),
		Type:      eventType,
		AccountID: accountID,
		OrderID:   orderID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	err := s.pool.AddTask(ctx, func() error {
		sendCtx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		return s.sink.Send(sendCtx, event)
	})
	if err != nil {
		zap.L().Warn("notification dropped",
			zap.String("type", eventType), zap.Int("accountID", accountID), zap.Error(err))
	}
}

func (s *Service) Close() {
	s.pool.Close()
}

// Noop discards all events; used where no dispatcher is wired.
type Noop struct{}

func (Noop) Dispatch(ctx context.Context, eventType string, accountID int, orderID *int, payload map[string]any) {
}
