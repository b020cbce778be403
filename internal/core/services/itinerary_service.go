package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tripmates/trip_planner_app/internal/apperrors"
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portsrepo "github.com/tripmates/trip_planner_app/internal/core/ports/repositories"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// itineraryService implements the ItinerarySvcFacade interface.
type itineraryService struct {
	BaseService
	itineraryRepo portsrepo.ItineraryRepository
	roomRepo      portsrepo.RoomReader
}

// NewItineraryService creates a new itinerary service.
func NewItineraryService(itineraryRepo portsrepo.ItineraryRepository, roomRepo portsrepo.RoomReader) portssvc.ItinerarySvcFacade {
	return &itineraryService{
		itineraryRepo: itineraryRepo,
		roomRepo:      roomRepo,
	}
}

// Ensure itineraryService implements the ItinerarySvcFacade interface.
var _ portssvc.ItinerarySvcFacade = (*itineraryService)(nil)

// CreateItinerary validates and persists a new itinerary with its activities.
func (s *itineraryService) CreateItinerary(ctx context.Context, roomID, creatorID string, input portssvc.CreateItineraryInput) (*domain.Itinerary, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	itinerary := domain.Itinerary{
		ItineraryID: uuid.NewString(),
		RoomID:      roomID,
		Title:       input.Title,
		StartDate:   startDate,
		EndDate:     endDate,
	}
	itinerary.CreatedAt = now
	itinerary.CreatedBy = creatorID
	itinerary.LastUpdatedAt = now
	itinerary.LastUpdatedBy = creatorID

	activities, err := parseActivities(itinerary.ItineraryID, creatorID, input.Activities)
	if err != nil {
		return nil, err
	}
	itinerary.Activities = activities

	if err := s.itineraryRepo.SaveItinerary(ctx, itinerary); err != nil {
		s.LogError(ctx, err, "Failed to save itinerary", slog.String("room_id", roomID))
		return nil, err
	}

	s.LogInfo(ctx, "Itinerary created successfully",
		slog.String("itinerary_id", itinerary.ItineraryID),
		slog.String("room_id", roomID),
		slog.Int("activity_count", len(activities)))
	return &itinerary, nil
}

// ListRoomItineraries returns all itineraries of a room, activities included.
func (s *itineraryService) ListRoomItineraries(ctx context.Context, roomID string) ([]domain.Itinerary, error) {
	if _, err := s.roomRepo.FindRoomByID(ctx, roomID); err != nil {
		return nil, err
	}
	itineraries, err := s.itineraryRepo.FindItinerariesByRoom(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list itineraries", slog.String("room_id", roomID))
		return nil, err
	}
	return itineraries, nil
}

// GetItinerary returns a single itinerary by ID.
func (s *itineraryService) GetItinerary(ctx context.Context, itineraryID string) (*domain.Itinerary, error) {
	return s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
}

// UpdateItinerary applies a partial update. Any room member may edit an
// itinerary; trips are planned together.
func (s *itineraryService) UpdateItinerary(ctx context.Context, itineraryID, callerID string, input portssvc.UpdateItineraryInput) (*domain.Itinerary, error) {
	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		itinerary.Title = *input.Title
	}
	if input.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", apperrors.ErrValidation)
		}
		itinerary.StartDate = startDate
	}
	if input.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", apperrors.ErrValidation)
		}
		itinerary.EndDate = endDate
	}
	if itinerary.EndDate.Before(itinerary.StartDate) {
		return nil, fmt.Errorf("end date precedes start date: %w", apperrors.ErrValidation)
	}
	if input.Activities != nil {
		activities, err := parseActivities(itinerary.ItineraryID, callerID, input.Activities)
		if err != nil {
			return nil, err
		}
		itinerary.Activities = activities
	}

	itinerary.LastUpdatedAt = time.Now()
	itinerary.LastUpdatedBy = callerID

	if err := s.itineraryRepo.UpdateItinerary(ctx, *itinerary); err != nil {
		s.LogError(ctx, err, "Failed to update itinerary", slog.String("itinerary_id", itineraryID))
		return nil, err
	}

	s.LogInfo(ctx, "Itinerary updated successfully", slog.String("itinerary_id", itineraryID))
	return itinerary, nil
}

// DeleteItinerary removes an itinerary. Only its creator may delete it.
func (s *itineraryService) DeleteItinerary(ctx context.Context, itineraryID, callerID string) error {
	itinerary, err := s.itineraryRepo.FindItineraryByID(ctx, itineraryID)
	if err != nil {
		return err
	}
	if itinerary.CreatedBy != callerID {
		s.LogWarn(ctx, "Member attempted to delete someone else's itinerary",
			slog.String("itinerary_id", itineraryID), slog.String("caller_id", callerID))
		return fmt.Errorf("only the creator may delete an itinerary: %w", apperrors.ErrForbidden)
	}

	if err := s.itineraryRepo.DeleteItinerary(ctx, itineraryID); err != nil {
		s.LogError(ctx, err, "Failed to delete itinerary", slog.String("itinerary_id", itineraryID))
		return err
	}

	s.LogInfo(ctx, "Itinerary deleted successfully", slog.String("itinerary_id", itineraryID))
	return nil
}

// parseActivities validates and converts caller-supplied activity lines.
func parseActivities(itineraryID, creatorID string, inputs []portssvc.ActivityInput) ([]domain.Activity, error) {
	activities := make([]domain.Activity, len(inputs))
	for i, in := range inputs {
		if in.Title == "" {
			return nil, fmt.Errorf("activity %d is missing a title: %w", i, apperrors.ErrValidation)
		}
		date, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("activity %d has an invalid date: %w", i, apperrors.ErrValidation)
		}
		cost := decimal.Zero
		if in.Cost != "" {
			cost, err = decimal.NewFromString(in.Cost)
			if err != nil || cost.IsNegative() {
				return nil, fmt.Errorf("activity %d cost must be a non-negative decimal: %w", i, apperrors.ErrValidation)
			}
		}
		activities[i] = domain.Activity{
			ActivityID:  uuid.NewString(),
			ItineraryID: itineraryID,
			Title:       in.Title,
			Description: in.Description,
			Location:    in.Location,
			Date:        date,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
			Cost:        cost,
			Notes:       in.Notes,
			CreatedBy:   creatorID,
		}
	}
	return activities, nil
}
