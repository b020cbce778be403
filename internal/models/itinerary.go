package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Itinerary is the database representation of an itinerary row.
type Itinerary struct {
	ItineraryID   string    `db:"itinerary_id"`
	RoomID        string    `db:"room_id"`
	Title         string    `db:"title"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Activity is the database representation of one itinerary activity.
type Activity struct {
	ActivityID  string          `db:"activity_id"`
	ItineraryID string          `db:"itinerary_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Location    string          `db:"location"`
	Date        time.Time       `db:"date"`
	StartTime   string          `db:"start_time"`
	EndTime     string          `db:"end_time"`
	Cost        decimal.Decimal `db:"cost"`
	Notes       string          `db:"notes"`
	CreatedBy   string          `db:"created_by"`
}
