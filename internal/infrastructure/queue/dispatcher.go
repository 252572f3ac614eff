package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/midas-hq/midas/internal/api/metrics"
	"github.com/midas-hq/midas/internal/core/domain"
	"github.com/midas-hq/midas/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes outbound messages to a fixed set of workers using
// consistent hashing on the recipient, guaranteeing per-recipient delivery
// ordering.
type Dispatcher struct {
	workers  []chan domain.Message
	provider ports.Provider
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, provider ports.Provider, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan domain.Message, numWorkers),
		provider: provider,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Message, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a message to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(msg domain.Message) {
	idx := d.shardIndex(msg.Recipient)
	d.workers[idx] <- msg
	metrics.MessagingQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a recipient deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Message) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.MessagingQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			if err := d.provider.Deliver(ctx, msg); err != nil {
				metrics.MessagesDeliveredTotal.WithLabelValues(string(msg.Channel), "error").Inc()
				d.log.Error().Err(err).
					Str("message_id", msg.ID).
					Str("channel", string(msg.Channel)).
					Int("worker_id", id).
					Msg("message delivery failed")
				continue
			}
			metrics.MessagesDeliveredTotal.WithLabelValues(string(msg.Channel), "ok").Inc()
		}
	}
}
