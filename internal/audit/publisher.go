package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Publisher emits audit events to a sink, either synchronously or through a
// buffered channel drained by a background worker. Emit never fails the
// caller: a full buffer or failing sink is logged and dropped.
type Publisher struct {
	sink   Sink
	logger *slog.Logger

	inbox chan Event
	wg    sync.WaitGroup

	closeOnce sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer switches the publisher to asynchronous mode with the given
// channel capacity.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan Event, size)
	}
}

func NewPublisher(sink Sink, logger *slog.Logger, opts ...Option) *Publisher {
	p := &Publisher{sink: sink, logger: logger}
	for _, opt := range opts {
		opt(p)
	}

	if p.inbox != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records one event. In async mode the event is queued; a full queue
// drops the event with a log line rather than blocking the request.
func (p *Publisher) Emit(ctx context.Context, e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}

	if p.inbox == nil {
		p.write(ctx, e)
		return
	}

	select {
	case p.inbox <- e:
	default:
		p.logger.Warn("audit buffer full, event dropped",
			slog.String("event_type", string(e.Type)))
	}
}

// Close drains any queued events and stops the worker.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		if p.inbox != nil {
			close(p.inbox)
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for e := range p.inbox {
		p.write(context.Background(), e)
	}
}

func (p *Publisher) write(ctx context.Context, e Event) {
	if err := p.sink.Write(ctx, e); err != nil {
		p.logger.Warn("audit write failed",
			slog.String("event_type", string(e.Type)),
			slog.String("error", err.Error()))
	}
}
