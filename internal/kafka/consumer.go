package kafka

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Handler returns nil only when the message was handled and its offset may
// be committed.
type Handler func(ctx context.Context, m kafka.Message) error

type Consumer struct {
	r       *kafka.Reader
	topic   string
	workers int
}

func NewConsumer(brokers []string, group, topic string, workers int) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        group,
		Topic:          topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
		// a new group starts at the head; older events are covered by the
		// snapshot a dashboard receives on connect
		StartOffset:    kafka.LastOffset,
	})
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{r: r, topic: topic, workers: workers}
}

// InstanceGroup derives a consumer group owned by a single process, so that
// every replica receives every partition of a broadcast topic.
func InstanceGroup(base, instance string) string {
	if instance == "" {
		return base
	}
	return base + "-" + instance
}

// Start fetches messages and fans them out to a fixed worker pool until ctx
// is cancelled. Offsets are committed per message after h succeeds.
func (c *Consumer) Start(ctx context.Context, h Handler) error {
	jobs := make(chan kafka.Message, 64)
	errs := make(chan error, c.workers)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range jobs {
				if err := h(ctx, m); err != nil {
					report(errs, err)
					continue
				}
				if err := c.r.CommitMessages(ctx, m); err != nil {
					report(errs, err)
				}
			}
		}()
	}
	defer func() {
		close(jobs)
		wg.Wait()
		if err := c.r.Close(); err != nil {
			log.Printf("[consumer] %s close: %v", c.topic, err)
		}
	}()

	for {
		m, err := c.r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		select {
		case jobs <- m:
		case <-ctx.Done():
			return nil
		}

		select {
		case e := <-errs:
			log.Printf("[consumer] %s worker: %v", c.topic, e)
			time.Sleep(200 * time.Millisecond)
		default:
		}
	}
}

func report(errs chan<- error, err error) {
	select {
	case errs <- err:
	default:
		log.Printf("[consumer] dropped error: %v", err)
	}
}
