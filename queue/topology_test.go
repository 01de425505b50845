package queue

import (
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type declaredExchange struct {
	name    string
	kind    string
	durable bool
}

type declaredQueue struct {
	name    string
	durable bool
	args    amqp.Table
}

type declaredBind struct {
	queue    string
	key      string
	exchange string
}

// fakeDeclarer records topology declarations.
type fakeDeclarer struct {
	exchanges []declaredExchange
	queues    []declaredQueue
	binds     []declaredBind

	failExchange string
}

func (f *fakeDeclarer) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	if name == f.failExchange {
		return errors.New("access refused")
	}
	f.exchanges = append(f.exchanges, declaredExchange{name: name, kind: kind, durable: durable})
	return nil
}

func (f *fakeDeclarer) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.queues = append(f.queues, declaredQueue{name: name, durable: durable, args: args})
	return amqp.Queue{Name: name}, nil
}

func (f *fakeDeclarer) QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error {
	f.binds = append(f.binds, declaredBind{queue: name, key: key, exchange: exchange})
	return nil
}

func TestDeclareTopology(t *testing.T) {
	ch := &fakeDeclarer{}
	cfg := DefaultConfig()

	err := declareTopology(ch, cfg)
	require.NoError(t, err)

	// Both exchanges are durable direct.
	require.Len(t, ch.exchanges, 2)
	for _, ex := range ch.exchanges {
		assert.Equal(t, "direct", ex.kind)
		assert.True(t, ex.durable)
	}
	assert.Equal(t, "documents.dlx", ch.exchanges[0].name)
	assert.Equal(t, "documents", ch.exchanges[1].name)

	// Dead-letter queue carries no extra arguments; the main queue routes
	// its rejects to the dead-letter exchange under the same key.
	require.Len(t, ch.queues, 2)
	dlq, main := ch.queues[0], ch.queues[1]

	assert.Equal(t, "document-ingestion.dead", dlq.name)
	assert.True(t, dlq.durable)
	assert.Nil(t, dlq.args)

	assert.Equal(t, "document-ingestion", main.name)
	assert.True(t, main.durable)
	assert.Equal(t, "documents.dlx", main.args["x-dead-letter-exchange"])
	assert.Equal(t, "document.uploaded", main.args["x-dead-letter-routing-key"])
	_, hasTTL := main.args["x-message-ttl"]
	assert.False(t, hasTTL, "no TTL argument unless configured")

	// Both queues bound by the same routing key.
	require.Len(t, ch.binds, 2)
	assert.Equal(t, declaredBind{queue: "document-ingestion.dead", key: "document.uploaded", exchange: "documents.dlx"}, ch.binds[0])
	assert.Equal(t, declaredBind{queue: "document-ingestion", key: "document.uploaded", exchange: "documents"}, ch.binds[1])
}

func TestDeclareTopology_MessageTTL(t *testing.T) {
	ch := &fakeDeclarer{}
	cfg := DefaultConfig()
	cfg.MessageTTL = 90 * time.Second

	err := declareTopology(ch, cfg)
	require.NoError(t, err)

	main := ch.queues[1]
	assert.Equal(t, int64(90000), main.args["x-message-ttl"])
}

func TestDeclareTopology_DeclarationFailure(t *testing.T) {
	ch := &fakeDeclarer{failExchange: "documents"}

	err := declareTopology(ch, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "documents")

	// The dead-letter side was declared before the failure.
	require.Len(t, ch.exchanges, 1)
	assert.Equal(t, "documents.dlx", ch.exchanges[0].name)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing URL", func(c *Config) { c.URL = "" }, true},
		{"missing exchange", func(c *Config) { c.Exchange = "" }, true},
		{"missing queue", func(c *Config) { c.Queue = "" }, true},
		{"missing routing key", func(c *Config) { c.RoutingKey = "" }, true},
		{"missing dead-letter exchange", func(c *Config) { c.DeadLetterExchange = "" }, true},
		{"missing dead-letter queue", func(c *Config) { c.DeadLetterQueue = "" }, true},
		{"zero prefetch", func(c *Config) { c.Prefetch = 0 }, true},
		{"negative TTL", func(c *Config) { c.MessageTTL = -time.Second }, true},
		{"positive TTL", func(c *Config) { c.MessageTTL = time.Minute }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
