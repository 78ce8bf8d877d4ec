package order

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"resto-dashboard/internal/cart"
	"resto-dashboard/internal/domain"
)

// ErrSubmissionInFlight is returned when a session already has a submission
// on the wire. The caller rejects the duplicate instead of queueing it.
var ErrSubmissionInFlight = errors.New("an order submission is already in progress")

// Submitter delivers a composed order to the backend.
type Submitter interface {
	SubmitOrder(ctx context.Context, order domain.Order, token string) error
}

// SubmittedEvent is published after the backend has accepted an order.
type SubmittedEvent struct {
	Type       string    `json:"type"`
	TableID    int       `json:"table_id"`
	TotalPrice float64   `json:"total_price"`
	ItemCount  int       `json:"item_count"`
	Timestamp  time.Time `json:"timestamp"`
}

type EventPublisher interface {
	PublishOrderSubmitted(ctx context.Context, event SubmittedEvent) error
}

// Gateway delivers composed orders and reconciles cart state with the
// outcome: the cart is cleared only after the backend has accepted the
// order, and left untouched on any failure.
type Gateway struct {
	backend   Submitter
	carts     cart.Store
	publisher EventPublisher

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewGateway wires the backend submitter and cart store. The publisher is
// optional; a nil publisher disables event emission.
func NewGateway(backend Submitter, carts cart.Store, publisher EventPublisher) *Gateway {
	return &Gateway{
		backend:   backend,
		carts:     carts,
		publisher: publisher,
		inFlight:  make(map[string]bool),
	}
}

func (g *Gateway) Submit(ctx context.Context, sessionID string, order domain.Order, token string) error {
	if !g.acquire(sessionID) {
		return ErrSubmissionInFlight
	}
	defer g.release(sessionID)

	if err := g.backend.SubmitOrder(ctx, order, token); err != nil {
		return err
	}

	if err := g.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("WARNING: order accepted but cart %s not cleared: %v", sessionID, err)
	}

	if g.publisher != nil {
		event := SubmittedEvent{
			Type:       "order_submitted",
			TableID:    order.TableID,
			TotalPrice: order.TotalPrice,
			ItemCount:  len(order.Dishes),
			Timestamp:  time.Now(),
		}
		if err := g.publisher.PublishOrderSubmitted(ctx, event); err != nil {
			log.Printf("WARNING: failed to publish order_submitted event: %v", err)
		}
	}

	return nil
}

func (g *Gateway) acquire(sessionID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[sessionID] {
		return false
	}
	g.inFlight[sessionID] = true
	return true
}

func (g *Gateway) release(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, sessionID)
}
