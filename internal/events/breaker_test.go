package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fjod/go_shop/pkg/circuitbreaker"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPublisher struct {
	calls  int
	err    error
	closed bool
}

func (p *countingPublisher) PublishCheckout(context.Context, CheckoutCompleted) error {
	p.calls++
	return p.err
}

func (p *countingPublisher) Close() error {
	p.closed = true
	return nil
}

func TestBreakerPublisher_FailsFastWhenOpen(t *testing.T) {
	next := &countingPublisher{err: errors.New("broker unavailable")}
	cb := circuitbreaker.New[struct{}](circuitbreaker.Settings{Name: "checkout-events", MaxFailures: 2, OpenTimeout: time.Minute}, nil)
	p := NewBreakerPublisher(next, cb)
	ctx := context.Background()

	require.Error(t, p.PublishCheckout(ctx, CheckoutCompleted{}))
	require.Error(t, p.PublishCheckout(ctx, CheckoutCompleted{}))

	err := p.PublishCheckout(ctx, CheckoutCompleted{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls)
}

func TestBreakerPublisher_PassesThrough(t *testing.T) {
	next := &countingPublisher{}
	p := NewBreakerPublisher(next, circuitbreaker.New[struct{}](circuitbreaker.Settings{Name: "checkout-events"}, nil))

	require.NoError(t, p.PublishCheckout(context.Background(), CheckoutCompleted{CheckoutID: "c1"}))
	assert.Equal(t, 1, next.calls)

	require.NoError(t, p.Close())
	assert.True(t, next.closed)
}
