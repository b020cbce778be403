package pgsql

import (
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	roomRepo := newPgxRoomRepository(dbPool)
	expenseRepo := newPgxExpenseRepository(dbPool)
	itineraryRepo := newPgxItineraryRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		RoomRepo:      roomRepo,
		ExpenseRepo:   expenseRepo,
		ItineraryRepo: itineraryRepo,
		DocumentRepo:  documentRepo,
	}
}
