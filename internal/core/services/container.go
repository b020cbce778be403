package services

import (
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
)

// NewContainer wires every service against the provided repositories. The
// publisher may be nil, in which case expense events are not emitted.
func NewContainer(repos *portsrepo.RepositoryProvider, tokens TokenConfig, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	expenseOptions := []ExpenseServiceOption{}
	if publisher != nil {
		expenseOptions = append(expenseOptions, WithEventPublisher(publisher))
	}

	return &portssvc.ServiceContainer{
		Room:      NewRoomService(repos.RoomRepo, tokens),
		Expense:   NewExpenseService(repos.ExpenseRepo, repos.RoomRepo, expenseOptions...),
		Itinerary: NewItineraryService(repos.ItineraryRepo, repos.RoomRepo),
		Document:  NewDocumentService(repos.DocumentRepo, repos.RoomRepo),
	}
}
