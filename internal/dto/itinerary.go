package dto

import (
	"time"

	"github.com/tripmates/trip_planner_app/internal/core/domain"
	portssvc "github.com/tripmates/trip_planner_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ActivityRequest is one activity line in an itinerary request.
type ActivityRequest struct {
	Title       string `json:"title" binding:"required,max=128"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" binding:"omitempty,datetime=15:04"`
	EndTime     string `json:"endTime" binding:"omitempty,datetime=15:04"`
	Cost        string `json:"cost"`
	Notes       string `json:"notes"`
}

// CreateItineraryRequest defines the data needed to create an itinerary.
type CreateItineraryRequest struct {
	Title      string            `json:"title" binding:"required,max=128"`
	StartDate  string            `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate    string            `json:"endDate" binding:"required,datetime=2006-01-02"`
	Activities []ActivityRequest `json:"activities" binding:"dive"`
}

// UpdateItineraryRequest defines the updatable fields; a non-nil Activities
// slice replaces the whole activity list.
type UpdateItineraryRequest struct {
	Title      *string           `json:"title"`
	StartDate  *string           `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate    *string           `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Activities []ActivityRequest `json:"activities" binding:"omitempty,dive"`
}

// ActivityResponse defines the data returned for an activity.
type ActivityResponse struct {
	ActivityID  string          `json:"activityId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Date        time.Time       `json:"date"`
	StartTime   string          `json:"startTime"`
	EndTime     string          `json:"endTime"`
	Cost        decimal.Decimal `json:"cost"`
	Notes       string          `json:"notes"`
}

// ItineraryResponse defines the data returned for an itinerary.
type ItineraryResponse struct {
	ItineraryID string             `json:"itineraryId"`
	RoomID      string             `json:"roomId"`
	Title       string             `json:"title"`
	StartDate   time.Time          `json:"startDate"`
	EndDate     time.Time          `json:"endDate"`
	Activities  []ActivityResponse `json:"activities"`
	CreatedBy   string             `json:"createdBy"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToCreateItineraryInput converts the request into the service input.
func (r CreateItineraryRequest) ToCreateItineraryInput() portssvc.CreateItineraryInput {
	return portssvc.CreateItineraryInput{
		Title:      r.Title,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Activities: toActivityInputs(r.Activities),
	}
}

// ToUpdateItineraryInput converts the request into the service input.
func (r UpdateItineraryRequest) ToUpdateItineraryInput() portssvc.UpdateItineraryInput {
	input := portssvc.UpdateItineraryInput{
		Title:     r.Title,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
	if r.Activities != nil {
		input.Activities = toActivityInputs(r.Activities)
	}
	return input
}

func toActivityInputs(activities []ActivityRequest) []portssvc.ActivityInput {
	inputs := make([]portssvc.ActivityInput, len(activities))
	for i, a := range activities {
		inputs[i] = portssvc.ActivityInput{
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Date:        a.Date,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Cost:        a.Cost,
			Notes:       a.Notes,
		}
	}
	return inputs
}

// ToItineraryResponse converts a domain.Itinerary to ItineraryResponse DTO.
func ToItineraryResponse(itinerary *domain.Itinerary) ItineraryResponse {
	activities := make([]ActivityResponse, len(itinerary.Activities))
	for i, a := range itinerary.Activities {
		activities[i] = ActivityResponse{
			ActivityID:  a.ActivityID,
			Title:       a.Title,
			Description: a.Description,
			Location:    a.Location,
			Date:        a.Date,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Cost:        a.Cost,
			Notes:       a.Notes,
		}
	}
	return ItineraryResponse{
		ItineraryID: itinerary.ItineraryID,
		RoomID:      itinerary.RoomID,
		Title:       itinerary.Title,
		StartDate:   itinerary.StartDate,
		EndDate:     itinerary.EndDate,
		Activities:  activities,
		CreatedBy:   itinerary.CreatedBy,
		CreatedAt:   itinerary.CreatedAt,
	}
}

// ToItineraryResponses converts a slice of domain.Itinerary to []ItineraryResponse.
func ToItineraryResponses(itineraries []domain.Itinerary) []ItineraryResponse {
	responses := make([]ItineraryResponse, len(itineraries))
	for i, itinerary := range itineraries {
		responses[i] = ToItineraryResponse(&itinerary)
	}
	return responses
}
