// Package pickup contains the pickup request aggregate and its audit trail.
//
// A Request carries two independent state machines:
//   - Status is the business status (PENDING, ASSIGNED, COMPLETED, CANCELLED,
//     RESCHEDULED and the payment flow's "Paid - Pending Pickup").
//   - TrackingStatus is the worker-visible progress marker (ASSIGNED, REACHED, DONE).
//
// Every business transition returns a Log entry which must be persisted in the
// same unit of work as the Request itself. Logs are append-only.
package pickup
