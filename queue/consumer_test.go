package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/vectorit/core"
)

// fakeAcknowledger records how a delivery was settled.
type fakeAcknowledger struct {
	events *[]string

	acks     int
	nacks    int
	rejects  int
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acks++
	if f.events != nil {
		*f.events = append(*f.events, "ack")
	}
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.nacks++
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	f.rejects++
	f.requeued = requeue
	return nil
}

// fakeProcessor implements Processor.
type fakeProcessor struct {
	events *[]string

	err  error
	jobs []*core.IngestionJob
}

func (f *fakeProcessor) Process(ctx context.Context, job *core.IngestionJob) error {
	f.jobs = append(f.jobs, job)
	if f.events != nil {
		*f.events = append(*f.events, "process")
	}
	return f.err
}

func newTestConsumer(t *testing.T, processor Processor) *Consumer {
	t.Helper()

	c, err := New(processor, DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func deliveryFor(t *testing.T, ack *fakeAcknowledger, payload any) amqp.Delivery {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func validJob() *core.IngestionJob {
	return &core.IngestionJob{
		FileID:   "file-9",
		UserID:   "u-2",
		Filename: "notes.md",
		FileType: "md",
		BlobPath: "uploads/notes.md",
	}
}

func TestNew_RequiresProcessor(t *testing.T) {
	_, err := New(nil, DefaultConfig())
	assert.Equal(t, ErrProcessorRequired, err)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prefetch = 0

	_, err := New(&fakeProcessor{}, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestHandleDelivery_AcksAfterProcessing(t *testing.T) {
	var events []string
	processor := &fakeProcessor{events: &events}
	ack := &fakeAcknowledger{events: &events}
	c := newTestConsumer(t, processor)

	c.handleDelivery(context.Background(), deliveryFor(t, ack, validJob()))

	require.Len(t, processor.jobs, 1)
	assert.Equal(t, "file-9", processor.jobs[0].FileID)
	assert.Equal(t, "uploads/notes.md", processor.jobs[0].BlobPath)

	assert.Equal(t, 1, ack.acks)
	assert.Equal(t, 0, ack.nacks)
	assert.Equal(t, 0, ack.rejects)
	// The ack happens only after the processor returned.
	assert.Equal(t, []string{"process", "ack"}, events)
}

func TestHandleDelivery_MalformedPayloadRejected(t *testing.T) {
	processor := &fakeProcessor{}
	ack := &fakeAcknowledger{}
	c := newTestConsumer(t, processor)

	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body:         []byte("not json at all"),
	})

	assert.Empty(t, processor.jobs)
	assert.Equal(t, 1, ack.rejects)
	assert.False(t, ack.requeued)
	assert.Equal(t, 0, ack.acks)
}

func TestHandleDelivery_IncompleteJobRejected(t *testing.T) {
	processor := &fakeProcessor{}
	ack := &fakeAcknowledger{}
	c := newTestConsumer(t, processor)

	job := validJob()
	job.BlobPath = ""
	c.handleDelivery(context.Background(), deliveryFor(t, ack, job))

	assert.Empty(t, processor.jobs)
	assert.Equal(t, 1, ack.rejects)
	assert.False(t, ack.requeued)
}

func TestHandleDelivery_FailedJobDeadLettered(t *testing.T) {
	processor := &fakeProcessor{err: errors.New("pipeline blew up")}
	ack := &fakeAcknowledger{}
	c := newTestConsumer(t, processor)

	c.handleDelivery(context.Background(), deliveryFor(t, ack, validJob()))

	require.Len(t, processor.jobs, 1)
	assert.Equal(t, 0, ack.acks)
	assert.Equal(t, 1, ack.nacks)
	assert.False(t, ack.requeued, "failed jobs must dead-letter, not requeue")
}

func TestHandleDelivery_UnknownFieldsTolerated(t *testing.T) {
	processor := &fakeProcessor{}
	ack := &fakeAcknowledger{}
	c := newTestConsumer(t, processor)

	c.handleDelivery(context.Background(), amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  1,
		Body: []byte(`{"file_id":"f-1","user_id":"u-1","filename":"a.txt",` +
			`"file_type":"txt","blob_path":"a.txt","producer_version":"9.9"}`),
	})

	require.Len(t, processor.jobs, 1)
	assert.Equal(t, 1, ack.acks)
}
