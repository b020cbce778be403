package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Activity is a single scheduled item inside an itinerary.
type Activity struct {
	ActivityID  string          `json:"activityID"`  // Primary Key (UUID)
	ItineraryID string          `json:"itineraryID"` // FK -> itineraries.itinerary_id
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Date        time.Time       `json:"date"`
	StartTime   string          `json:"startTime"` // "HH:MM", display-only
	EndTime     string          `json:"endTime"`
	Cost        decimal.Decimal `json:"cost"`
	Notes       string          `json:"notes"`
	CreatedBy   string          `json:"createdBy"` // MemberID reference
}

// Itinerary is a day-by-day plan for a room's trip.
type Itinerary struct {
	ItineraryID string     `json:"itineraryID"` // Primary Key (UUID)
	RoomID      string     `json:"roomID"`      // FK -> rooms.room_id
	Title       string     `json:"title"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Activities  []Activity `json:"activities"`
	AuditFields
}
