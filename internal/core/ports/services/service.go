package services

import "context"

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is used
// throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Room      RoomSvcFacade
	Expense   ExpenseSvcFacade
	Itinerary ItinerarySvcFacade
	Document  DocumentSvcFacade
}

// EventPublisher emits room activity events to interested consumers (e.g.
// an AMQP exchange). Implementations must be safe for concurrent use; a
// publish failure must never fail the originating request.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, action, expenseID, roomID string) error
}
