package queue

import "errors"

var (
	// ErrProcessorRequired is returned when a job processor is not provided.
	ErrProcessorRequired = errors.New("job processor required")

	// ErrInvalidConfig indicates the consumer configuration failed validation.
	ErrInvalidConfig = errors.New("invalid consumer config")

	// ErrDeliveriesClosed indicates the broker closed the delivery stream
	// while the consumer was still running.
	ErrDeliveriesClosed = errors.New("delivery stream closed")
)
