// Package events carries change notifications for the flashcard library.
// A ChangeBroker fans events from mutation sources (stores, the postgres
// LISTEN connection) out to subscribers such as the SSE handler, which use
// them purely as refetch signals.
package events
