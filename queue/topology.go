package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// declarer is the subset of amqp.Channel the topology setup needs.
type declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

// declareTopology declares the full durable topology: main exchange and
// queue, dead-letter exchange and queue, all bound by the same routing key.
// Declarations are idempotent as long as the parameters never change; a
// parameter change against an existing object fails the channel, which is
// the desired behavior for a topology drift.
func declareTopology(ch declarer, cfg Config) error {
	// Dead-letter side first so the main queue can reference it.
	if err := ch.ExchangeDeclare(cfg.DeadLetterExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", cfg.DeadLetterExchange, err)
	}
	if _, err := ch.QueueDeclare(cfg.DeadLetterQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.DeadLetterQueue, err)
	}
	if err := ch.QueueBind(cfg.DeadLetterQueue, cfg.RoutingKey, cfg.DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", cfg.DeadLetterQueue, err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	args := amqp.Table{
		"x-dead-letter-exchange":    cfg.DeadLetterExchange,
		"x-dead-letter-routing-key": cfg.RoutingKey,
	}
	if cfg.MessageTTL > 0 {
		args["x-message-ttl"] = cfg.MessageTTL.Milliseconds()
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare queue %s: %w", cfg.Queue, err)
	}
	if err := ch.QueueBind(cfg.Queue, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", cfg.Queue, err)
	}

	return nil
}
