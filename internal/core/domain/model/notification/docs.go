// Package notification provides the Notification aggregate: a message shown to
// one user about a change on an order or delivery.
//
// A notification is identified for deduplication by the pair
// (SourceEventID, RecipientUserID); at most one row exists per pair. Only the
// recipient may mark it read or delete it.
package notification
