// Package hitevents publishes one Kafka message per grid lookup.
package hitevents

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	json "github.com/goccy/go-json"

	"github.com/mohammed-shakir/triangle-grid/internal/core/observability"
)

type Kind string

const (
	KindCell   Kind = "cell"
	KindLocate Kind = "locate"
	KindAll    Kind = "all"
)

type Event struct {
	Kind     Kind      `json:"kind"`
	Row      string    `json:"row,omitempty"`
	Column   int       `json:"column,omitempty"`
	Valid    bool      `json:"valid"`
	TS       time.Time `json:"ts"`
	Scenario string    `json:"scenario,omitempty"`
}

// Publisher is safe for concurrent Publish calls. Publish never blocks, and
// events published after Close are dropped.
type Publisher struct {
	topic   string
	mu      sync.RWMutex
	closed  bool
	events  chan Event
	prod    sarama.AsyncProducer
	log     *slog.Logger
	stopped chan struct{}
	errDone chan struct{}
}

func NewPublisher(brokers []string, topic string, queueSize int, log *slog.Logger) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.Return.Errors = true
	cfg.Producer.Return.Successes = false
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Compression = sarama.CompressionSnappy

	prod, err := sarama.NewAsyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("hitevents: create async producer: %w", err)
	}
	return newWithProducer(prod, topic, queueSize, log), nil
}

func newWithProducer(prod sarama.AsyncProducer, topic string, queueSize int, log *slog.Logger) *Publisher {
	if queueSize <= 0 {
		queueSize = 1024
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Publisher{
		topic:   topic,
		events:  make(chan Event, queueSize),
		prod:    prod,
		log:     log,
		stopped: make(chan struct{}),
		errDone: make(chan struct{}),
	}

	go func() {
		defer close(p.stopped)
		for ev := range p.events {
			b, err := json.Marshal(ev)
			if err != nil {
				p.log.Warn("hitevents: marshal", "err", err)
				observability.IncEventsDropped()
				continue
			}
			msg := &sarama.ProducerMessage{
				Topic: p.topic,
				Key:   sarama.StringEncoder(ev.Kind),
				Value: sarama.ByteEncoder(b),
			}
			p.prod.Input() <- msg
		}
	}()

	go func() {
		defer close(p.errDone)
		for perr := range p.prod.Errors() {
			if perr != nil {
				p.log.Warn("hitevents: producer error", "err", perr.Err, "topic", p.topic)
				observability.IncEventsDropped()
			}
		}
	}()

	return p
}

func (p *Publisher) Publish(ev Event) {
	if ev.TS.IsZero() {
		ev.TS = time.Now().UTC()
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		observability.IncEventsDropped()
		return
	}
	select {
	case p.events <- ev:
	default:
		// queue full, the request path must not wait on Kafka
		observability.IncEventsDropped()
	}
}

// Close drains queued events into the producer and closes it. Calls after
// the first are no-ops.
func (p *Publisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.events)
	p.mu.Unlock()
	<-p.stopped

	err := p.prod.Close()
	<-p.errDone
	if err != nil {
		return fmt.Errorf("hitevents: close producer: %w", err)
	}
	return nil
}
