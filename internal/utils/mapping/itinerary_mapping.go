package mapping

import (
	"github.com/tripmates/trip_planner_app/internal/core/domain"
	"github.com/tripmates/trip_planner_app/internal/models"
)

// ToModelItinerary converts a domain.Itinerary to its database model.
func ToModelItinerary(itinerary domain.Itinerary) models.Itinerary {
	return models.Itinerary{
		ItineraryID:   itinerary.ItineraryID,
		RoomID:        itinerary.RoomID,
		Title:         itinerary.Title,
		StartDate:     itinerary.StartDate,
		EndDate:       itinerary.EndDate,
		CreatedAt:     itinerary.CreatedAt,
		CreatedBy:     itinerary.CreatedBy,
		LastUpdatedAt: itinerary.LastUpdatedAt,
		LastUpdatedBy: itinerary.LastUpdatedBy,
	}
}

// ToModelActivities converts the activity list of an itinerary.
func ToModelActivities(itinerary domain.Itinerary) []models.Activity {
	activities := make([]models.Activity, len(itinerary.Activities))
	for i, a := range itinerary.Activities {
		activities[i] = models.Activity{
			ActivityID:  a.ActivityID,
			ItineraryID: itinerary.ItineraryID,
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Date:        a.Date,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Cost:        a.Cost,
			Notes:       a.Notes,
			CreatedBy:   a.CreatedBy,
		}
	}
	return activities
}

// ToDomainItinerary converts a database itinerary row plus its activity
// rows to the domain entity.
func ToDomainItinerary(m models.Itinerary, activities []models.Activity) domain.Itinerary {
	itinerary := domain.Itinerary{
		ItineraryID: m.ItineraryID,
		RoomID:      m.RoomID,
		Title:       m.Title,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Activities:  make([]domain.Activity, len(activities)),
	}
	itinerary.CreatedAt = m.CreatedAt
	itinerary.CreatedBy = m.CreatedBy
	itinerary.LastUpdatedAt = m.LastUpdatedAt
	itinerary.LastUpdatedBy = m.LastUpdatedBy
	for i, a := range activities {
		itinerary.Activities[i] = domain.Activity{
			ActivityID:  a.ActivityID,
			ItineraryID: a.ItineraryID,
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Date:        a.Date,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Cost:        a.Cost,
			Notes:       a.Notes,
			CreatedBy:   a.CreatedBy,
		}
	}
	return itinerary
}
