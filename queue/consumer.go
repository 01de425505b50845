// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/poiesic/vectorit/core"
)

const (
	maxDialAttempts = 5
	dialBaseDelay   = 1 * time.Second
)

// Processor runs one ingestion job to a terminal state.
// *pipeline.Orchestrator satisfies this.
type Processor interface {
	Process(ctx context.Context, job *core.IngestionJob) error
}

// Consumer pulls ingestion jobs off the broker and hands them to a
// Processor. Concurrency is bounded twice by the same number: the channel
// prefetch caps unacknowledged deliveries and the worker pool caps running
// pipelines, so the broker never hands this process more work than it runs.
type Consumer struct {
	cfg       Config
	processor Processor
	conn      *amqp.Connection
	channel   *amqp.Channel
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures a Consumer.
type Option func(*Consumer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Consumer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// New creates a Consumer. It does not touch the network; Start connects.
func New(processor Processor, cfg Config, opts ...Option) (*Consumer, error) {
	if processor == nil {
		return nil, ErrProcessorRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(cfg.Prefetch)
	if err != nil {
		return nil, err
	}

	c := &Consumer{
		cfg:       cfg,
		processor: processor,
		pool:      pool,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			pool.Release()
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "consumer")
	return c, nil
}

// Start connects to the broker, declares the topology, and consumes until
// the context is canceled or the connection drops. A dropped connection
// returns an error so a supervisor can restart the process; in-flight
// deliveries stay unacknowledged and are redelivered.
func (c *Consumer) Start(ctx context.Context) error {
	if err := c.connect(ctx); err != nil {
		return err
	}
	defer c.Close()

	deliveries, err := c.channel.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.cfg.Queue, err)
	}
	closed := c.conn.NotifyClose(make(chan *amqp.Error, 1))

	c.logger.Info("consuming ingestion jobs",
		"queue", c.cfg.Queue, "exchange", c.cfg.Exchange, "prefetch", c.cfg.Prefetch)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case amqpErr := <-closed:
			if amqpErr == nil {
				return nil
			}
			return fmt.Errorf("connection closed: %w", amqpErr)
		case delivery, ok := <-deliveries:
			if !ok {
				return ErrDeliveriesClosed
			}
			if err := c.pool.Submit(func() { c.handleDelivery(ctx, delivery) }); err != nil {
				c.logger.Error("unable to submit delivery to worker pool", "err", err)
				return err
			}
		}
	}
}

// connect dials with bounded backoff, then prepares the channel.
func (c *Consumer) connect(ctx context.Context) error {
	var (
		conn    *amqp.Connection
		lastErr error
	)

	delay := dialBaseDelay
	for attempt := 1; attempt <= maxDialAttempts; attempt++ {
		conn, lastErr = amqp.Dial(c.cfg.URL)
		if lastErr == nil {
			break
		}
		c.logger.Warn("broker dial failed",
			"attempt", attempt, "max_attempts", maxDialAttempts, "err", lastErr)

		if attempt == maxDialAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	if lastErr != nil {
		return fmt.Errorf("dial broker after %d attempts: %w", maxDialAttempts, lastErr)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	if err := declareTopology(ch, c.cfg); err != nil {
		conn.Close()
		return err
	}
	// Prefetch bounds unacknowledged deliveries, and with them the number
	// of concurrently running pipelines.
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		conn.Close()
		return fmt.Errorf("set prefetch: %w", err)
	}

	c.conn = conn
	c.channel = ch
	return nil
}

// handleDelivery decodes and runs one job, then settles the delivery.
// A delivery is acknowledged only after the processor reached a terminal
// state, which includes attempting the final status report.
func (c *Consumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	var job core.IngestionJob
	if err := json.Unmarshal(delivery.Body, &job); err != nil {
		// A payload that does not decode can never succeed; dead-letter it
		// without a status callback since there is no trustworthy file id.
		c.logger.Warn("rejecting malformed job payload", "err", err)
		c.reject(delivery)
		return
	}
	if err := core.ValidateJob(&job); err != nil {
		c.logger.Warn("rejecting invalid job", "file_id", job.FileID, "err", err)
		c.reject(delivery)
		return
	}

	if err := c.processor.Process(ctx, &job); err != nil {
		c.logger.Error("job failed", "file_id", job.FileID, "err", err)
		// No requeue: the broker dead-letters the message for operators.
		if nackErr := delivery.Nack(false, false); nackErr != nil {
			c.logger.Error("unable to nack delivery", "err", nackErr)
		}
		return
	}

	if ackErr := delivery.Ack(false); ackErr != nil {
		c.logger.Error("unable to ack delivery", "err", ackErr)
	}
}

func (c *Consumer) reject(delivery amqp.Delivery) {
	if err := delivery.Reject(false); err != nil {
		c.logger.Error("unable to reject delivery", "err", err)
	}
}

// Close releases the worker pool and closes the broker connection. The
// consumer should not be used after calling Close.
func (c *Consumer) Close() error {
	if c.pool != nil {
		c.pool.Release()
	}
	if c.conn != nil && !c.conn.IsClosed() {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}
