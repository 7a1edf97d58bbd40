package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Availability values shown as checkboxes on the listing form. Anything
// outside this set is rejected at the boundary instead of stored as-is.
var AvailabilityOptions = []string{
	"weekday-mornings",
	"weekday-afternoons",
	"weekday-evenings",
	"weekend-mornings",
	"weekend-afternoons",
	"weekend-evenings",
	"flexible",
}

func IsValidAvailability(value string) bool {
	for _, opt := range AvailabilityOptions {
		if value == opt {
			return true
		}
	}
	return false
}

type Skill struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	// Owner identity is denormalized onto the listing, the way the cards
	// render it. It is not refreshed when the profile changes.
	UserName  string `gorm:"size:255;not null" json:"user_name"`
	UserEmail string `gorm:"size:255" json:"user_email"`

	Title       string `gorm:"size:255;not null" json:"title"`
	Category    string `gorm:"size:100;not null" json:"category"`
	Description string `gorm:"type:text;not null" json:"description"`

	Price    float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Duration int     `gorm:"not null;default:60" json:"duration"`
	Location string  `gorm:"size:255" json:"location"`

	Availability datatypes.JSON `gorm:"type:jsonb" json:"availability"`

	// Rating holds the most recent review's rating, not an average.
	Rating        float32 `gorm:"default:0" json:"rating"`
	TotalBookings int     `gorm:"default:0" json:"total_bookings"`
	LastBooked    *string `gorm:"size:10" json:"last_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
