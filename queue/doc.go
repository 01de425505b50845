// Package queue consumes document-ingestion jobs from RabbitMQ.
//
// # Topology
//
// One durable direct exchange routes job messages to one durable queue by a
// fixed routing key. The queue declares a dead-letter exchange under the
// same key, so every message the consumer refuses (malformed payload,
// failed pipeline, expired TTL) lands in a durable dead-letter queue for
// inspection and replay. Scale-out is additional consumer processes on the
// same queue; the broker balances deliveries between them.
//
// # Acknowledgement discipline
//
// Deliveries are settled exactly once, after the job reaches a terminal
// state:
//
//   - undecodable or incomplete payload: rejected without requeue, no
//     status callback
//   - pipeline failure: negatively acknowledged without requeue, after the
//     failed status was reported
//   - success: acknowledged, after the indexed status was reported
//
// A crash mid-job leaves the delivery unacknowledged for redelivery, which
// is safe because indexing is idempotent.
package queue
