package event

import (
	"context"
	"sync"
	"time"

	"github.com/younglafire/fruitfarm/internal/logger"
)

type retryEntry struct {
	event     Event
	attempt   int
	nextRetry time.Time
	lastErr   error
}

// ResilientPublisher wraps a Bus with a retry queue and a dead-letter file.
// PublishWithRetry never blocks on a failing subscriber: the first attempt is
// synchronous, later attempts run on a background worker with exponential backoff.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewResilientPublisher starts the retry worker. An empty deadLetterPath disables the file.
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		shutdown:   make(chan struct{}),
	}

	if deadLetterPath != "" {
		dl, err := NewDeadLetterWriter(deadLetterPath)
		if err != nil {
			return nil, err
		}
		rp.deadLetter = dl
	}

	rp.wg.Add(1)
	go rp.retryWorker()
	return rp, nil
}

// PublishWithRetry publishes the event, queuing it for retry on failure
func (rp *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := rp.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	rp.enqueue(retryEntry{
		event:     event,
		attempt:   1,
		nextRetry: time.Now().Add(CalculateRetryDelay(rp.retryDelay, 1)),
		lastErr:   err,
	})
}

func (rp *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case <-rp.shutdown:
		rp.writeDeadLetter(entry)
		return
	default:
	}

	select {
	case rp.retryQueue <- entry:
	default:
		logger.FromContext(context.Background()).Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		rp.writeDeadLetter(entry)
	}
}

func (rp *ResilientPublisher) retryWorker() {
	defer rp.wg.Done()

	for {
		select {
		case <-rp.shutdown:
			rp.drain()
			return
		case entry := <-rp.retryQueue:
			if wait := time.Until(entry.nextRetry); wait > 0 {
				timer := time.NewTimer(wait)
				select {
				case <-timer.C:
				case <-rp.shutdown:
					timer.Stop()
				}
			}
			rp.retry(entry)
		}
	}
}

func (rp *ResilientPublisher) retry(entry retryEntry) {
	log := logger.FromContext(context.Background())

	err := rp.bus.Publish(context.Background(), entry.event)
	if err == nil {
		log.Info(LogMsgEventRetrySucceeded, "event_type", entry.event.Type, "attempt", entry.attempt)
		return
	}
	entry.lastErr = err

	if entry.attempt >= rp.maxRetries {
		log.Error(LogMsgEventRetryExhausted, "event_type", entry.event.Type, "attempts", entry.attempt+1)
		rp.writeDeadLetter(entry)
		return
	}

	entry.attempt++
	entry.nextRetry = time.Now().Add(CalculateRetryDelay(rp.retryDelay, entry.attempt))
	log.Warn(LogMsgEventRetryFailed, "event_type", entry.event.Type, "attempt", entry.attempt, "error", err)

	select {
	case <-rp.shutdown:
		rp.writeDeadLetter(entry)
	case rp.retryQueue <- entry:
	default:
		rp.writeDeadLetter(entry)
	}
}

// drain makes one last attempt for every queued event
func (rp *ResilientPublisher) drain() {
	drained := 0
	for {
		select {
		case entry := <-rp.retryQueue:
			drained++
			if err := rp.bus.Publish(context.Background(), entry.event); err != nil {
				entry.lastErr = err
				rp.writeDeadLetter(entry)
			}
		default:
			if drained > 0 {
				logger.FromContext(context.Background()).Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

func (rp *ResilientPublisher) writeDeadLetter(entry retryEntry) {
	if rp.deadLetter == nil {
		return
	}
	if err := rp.deadLetter.Write(entry.event, entry.attempt, entry.lastErr); err != nil {
		logger.FromContext(context.Background()).Error(LogMsgDeadLetterWriteFailed, "error", err)
	}
}

// Shutdown stops the retry worker, draining the queue, and closes the dead-letter file
func (rp *ResilientPublisher) Shutdown(ctx context.Context) error {
	var err error
	rp.shutdownOnce.Do(func() {
		close(rp.shutdown)

		done := make(chan struct{})
		go func() {
			rp.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
			err = ctx.Err()
			return
		}
		rp.drain()

		if rp.deadLetter != nil {
			err = rp.deadLetter.Close()
		}
	})
	return err
}
