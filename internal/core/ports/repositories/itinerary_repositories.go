package repositories

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// ItineraryRepository is the persistence surface for itineraries and their
// activities.
type ItineraryRepository interface {
	SaveItinerary(ctx context.Context, itinerary domain.Itinerary) error
	// FindItineraryByID returns apperrors.ErrNotFound when absent.
	FindItineraryByID(ctx context.Context, itineraryID string) (*domain.Itinerary, error)
	FindItinerariesByRoom(ctx context.Context, roomID string) ([]domain.Itinerary, error)
	UpdateItinerary(ctx context.Context, itinerary domain.Itinerary) error
	DeleteItinerary(ctx context.Context, itineraryID string) error
}
