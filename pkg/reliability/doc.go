// Package reliability delivers change-data-capture events with bounded retries
// and a dead-letter queue.
//
// Each event is offered to a caller-supplied publish callback up to a fixed
// number of attempts. The delay between attempts is constant and advisory: it
// is computed from a backoff schedule and handed to an optional Waiter, and
// nothing blocks when no Waiter is configured. An event that exhausts its
// attempts is dead-lettered exactly once and reported with SRB1-R-7004.
//
// Batch delivery processes events in input order and never fails as a whole:
// it reports how many events were published and how many were dead-lettered.
package reliability
