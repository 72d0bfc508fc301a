package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slowSource struct {
	calls atomic.Int32
	delay time.Duration
	err   error
}

func (s *slowSource) Products(ctx context.Context, loc locale.Locale) ([]domain.Product, error) {
	s.calls.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return nil, s.err
	}
	return NewStaticSource().Products(ctx, loc)
}

func TestService_ConcurrentLoadsGetIndependentCopies(t *testing.T) {
	src := &slowSource{delay: 50 * time.Millisecond}
	svc := NewService(src)

	const n = 10
	results := make([][]domain.Product, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			products, err := svc.Products(context.Background(), locale.English)
			assert.NoError(t, err)
			results[i] = products
		}(i)
	}
	wg.Wait()

	assert.Less(t, src.calls.Load(), int32(n))

	results[0][0].Name = "mutated"
	results[0][0].Tags[0] = "mutated"
	for i := 1; i < n; i++ {
		assert.Equal(t, "Premium Wireless Headphones", results[i][0].Name)
		assert.Equal(t, "wireless", results[i][0].Tags[0])
	}
}

// gatedSource blocks until released and fails if its context was cancelled.
type gatedSource struct {
	startOnce sync.Once
	started   chan struct{}
	release   chan struct{}
}

func (s *gatedSource) Products(ctx context.Context, loc locale.Locale) ([]domain.Product, error) {
	s.startOnce.Do(func() { close(s.started) })
	<-s.release
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return NewStaticSource().Products(ctx, loc)
}

func TestService_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	src := &gatedSource{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(src)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Products(ctx, locale.English)
		firstErr <- err
	}()

	<-src.started
	cancel()

	second := make(chan []domain.Product, 1)
	go func() {
		products, err := svc.Products(context.Background(), locale.English)
		assert.NoError(t, err)
		second <- products
	}()

	time.Sleep(10 * time.Millisecond)
	close(src.release)

	require.NoError(t, <-firstErr)
	assert.Len(t, <-second, 6)
}

func TestService_Product(t *testing.T) {
	svc := NewService(NewStaticSource())

	p, err := svc.Product(context.Background(), locale.English, 3)
	require.NoError(t, err)
	assert.Equal(t, "Smart Fitness Watch", p.Name)

	_, err = svc.Product(context.Background(), locale.English, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestService_SourceError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&slowSource{err: boom})

	_, err := svc.Products(context.Background(), locale.English)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "load catalog en")
}
