package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/anantha-foods/ordering-system/internal/api/metrics"
	"github.com/anantha-foods/ordering-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes customer notifications to a fixed set of workers using
// consistent hashing on the order id, guaranteeing per-order delivery
// ordering. It implements ports.Notifier so services can enqueue without
// knowing about the worker pool.
type Dispatcher struct {
	workers  []chan ports.Notification
	notifier ports.Notifier
	log      zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers wrapping
// the given delivery notifier. If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, notifier ports.Notifier, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan ports.Notification, numWorkers),
		notifier: notifier,
		log:      log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Send enqueues a notification for the worker responsible for its order id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Send(_ context.Context, n ports.Notification) error {
	idx := d.shardIndex(n.OrderID)
	d.workers[idx] <- n
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	return nil
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.notifier.Send(ctx, n); err != nil {
				d.log.Error().Err(err).
					Str("order_id", n.OrderID).
					Str("kind", string(n.Kind)).
					Int("worker_id", id).
					Msg("notification delivery failed")
				continue
			}
			metrics.NotificationsSentTotal.WithLabelValues(string(n.Kind)).Inc()
		}
	}
}
