package events

import (
	"context"

	"github.com/sony/gobreaker/v2"
)

// BreakerPublisher stops calling a failing publisher for a while so that
// checkouts do not each wait for a broker that is down.
type BreakerPublisher struct {
	next Publisher
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerPublisher(next Publisher, cb *gobreaker.CircuitBreaker[struct{}]) *BreakerPublisher {
	return &BreakerPublisher{next: next, cb: cb}
}

func (p *BreakerPublisher) PublishCheckout(ctx context.Context, event CheckoutCompleted) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.PublishCheckout(ctx, event)
	})
	return err
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
