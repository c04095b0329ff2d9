package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/palletworks/portal/internal/notify"
)

// NotificationDispatcher delivers customer notifications in the background.
// Enqueue never blocks the caller: when the queue is full the message is
// dropped and logged. Delivery failures are logged and never surface to the
// operation that produced the notification.
type NotificationDispatcher struct {
	sender      notify.Sender
	logger      *slog.Logger
	jobs        chan notify.Message
	workers     int
	sendTimeout time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func NewNotificationDispatcher(sender notify.Sender, queueSize, workers int, sendTimeout time.Duration, logger *slog.Logger) *NotificationDispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	if workers <= 0 {
		workers = 1
	}
	return &NotificationDispatcher{
		sender:      sender,
		logger:      logger,
		jobs:        make(chan notify.Message, queueSize),
		workers:     workers,
		sendTimeout: sendTimeout,
	}
}

// Start launches the worker goroutines. Subsequent calls are no-ops until
// Stop has been called.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.loop(runCtx)
	}
}

// Stop signals the workers and waits for in-flight deliveries to finish.
// Messages still sitting in the queue are not delivered.
func (d *NotificationDispatcher) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	cancel := d.cancel
	d.mu.Unlock()

	cancel()
	d.wg.Wait()
}

// Enqueue hands a message to the dispatcher without blocking.
func (d *NotificationDispatcher) Enqueue(msg notify.Message) {
	select {
	case d.jobs <- msg:
	default:
		d.logger.Warn("notification queue full, dropping message",
			slog.String("kind", string(msg.Kind)),
			slog.String("recipient", msg.Recipient),
		)
	}
}

func (d *NotificationDispatcher) loop(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-d.jobs:
			d.deliver(ctx, msg)
		}
	}
}

func (d *NotificationDispatcher) deliver(ctx context.Context, msg notify.Message) {
	sendCtx := ctx
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	if err := d.sender.Send(sendCtx, msg); err != nil {
		d.logger.Error("notification delivery failed",
			slog.String("kind", string(msg.Kind)),
			slog.String("recipient", msg.Recipient),
			slog.String("error", err.Error()),
		)
	}
}
