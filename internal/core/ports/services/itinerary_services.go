package services

import (
	"context"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
)

// ActivityInput is one caller-supplied activity line.
type ActivityInput struct {
	Title       string
	Description string
	Location    string
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string
	Cost        string // Decimal string, "" means zero
	Notes       string
}

// CreateItineraryInput carries the fields for a new itinerary.
type CreateItineraryInput struct {
	Title      string
	StartDate  string // YYYY-MM-DD
	EndDate    string
	Activities []ActivityInput
}

// UpdateItineraryInput carries the updatable fields; nil keeps the current
// value, a non-nil Activities slice replaces the whole activity list.
type UpdateItineraryInput struct {
	Title      *string
	StartDate  *string
	EndDate    *string
	Activities []ActivityInput
}

// ItinerarySvcFacade is the service surface for itinerary CRUD.
type ItinerarySvcFacade interface {
	CreateItinerary(ctx context.Context, roomID, creatorID string, input CreateItineraryInput) (*domain.Itinerary, error)
	ListRoomItineraries(ctx context.Context, roomID string) ([]domain.Itinerary, error)
	GetItinerary(ctx context.Context, itineraryID string) (*domain.Itinerary, error)
	UpdateItinerary(ctx context.Context, itineraryID, callerID string, input UpdateItineraryInput) (*domain.Itinerary, error)
	DeleteItinerary(ctx context.Context, itineraryID, callerID string) error
}
