package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

const (
	BookingActionConfirm  = "confirm"
	BookingActionCancel   = "cancel"
	BookingActionMarkPaid = "mark-paid"
	BookingActionComplete = "complete"
)

var (
	ErrInvalidTransition = errors.New("booking is not in a state that allows this action")
	ErrUnknownAction     = errors.New("unknown booking action")
)

type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingNumber string    `gorm:"size:30;not null;unique" json:"booking_number"`

	SkillID       uuid.UUID `gorm:"type:uuid;not null;index" json:"skill_id"`
	SkillTitle    string    `gorm:"size:255;not null" json:"skill_title"`
	SkillCategory string    `gorm:"size:100" json:"skill_category"`

	TeacherID    uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	TeacherName  string    `gorm:"size:255;not null" json:"teacher_name"`
	TeacherEmail string    `gorm:"size:255" json:"teacher_email"`

	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	StudentName  string    `gorm:"size:255;not null" json:"student_name"`
	StudentEmail string    `gorm:"size:255" json:"student_email"`

	Date     string  `gorm:"size:10;not null" json:"date"`
	Time     string  `gorm:"size:5;not null" json:"time"`
	Duration int     `gorm:"not null;default:60" json:"duration"`
	Location string  `gorm:"size:255" json:"location"`
	Price    float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Currency string  `gorm:"size:3;not null;default:'INR'" json:"currency"`

	// Cash at the start of the session is the only payment method; paid
	// is an unverified self-report by the teacher.
	PaymentMethod string `gorm:"size:20;not null;default:'cash'" json:"payment_method"`
	PaymentStatus string `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentNotes  string `gorm:"size:255" json:"payment_notes"`

	Status             string  `gorm:"size:20;not null;default:'pending'" json:"status"`
	CancellationReason *string `gorm:"size:255" json:"cancellation_reason"`
	Notes              string  `gorm:"type:text" json:"notes"`

	// Per-role notification badge flags.
	TeacherRead bool `gorm:"default:false" json:"teacher_read"`
	StudentRead bool `gorm:"default:true" json:"student_read"`

	ReviewRating  int        `gorm:"default:0" json:"review_rating"`
	ReviewComment string     `gorm:"type:text" json:"review_comment"`
	ReviewedAt    *time.Time `json:"reviewed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// SessionStart parses the stored date and time in the server's zone.
func (b *Booking) SessionStart() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, time.Local)
}

func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return b.StudentID == userID || b.TeacherID == userID
}

// Apply mutates the booking for a lifecycle action, rejecting transitions
// that are not allowed from the current status. Side-channel fields
// (payment status, cancellation reason, payment notes) move together with
// the status so a booking is never half-transitioned.
func (b *Booking) Apply(action string, reason string) error {
	switch action {
	case BookingActionConfirm:
		if b.Status != BookingStatusPending {
			return ErrInvalidTransition
		}
		b.Status = BookingStatusConfirmed
		b.PaymentStatus = PaymentStatusPending
	case BookingActionCancel:
		if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
			return ErrInvalidTransition
		}
		b.Status = BookingStatusCancelled
		b.PaymentStatus = PaymentStatusCancelled
		b.CancellationReason = &reason
	case BookingActionMarkPaid:
		if b.Status != BookingStatusConfirmed {
			return ErrInvalidTransition
		}
		b.PaymentStatus = PaymentStatusPaid
		b.PaymentNotes = "Payment received in cash"
	case BookingActionComplete:
		if b.Status != BookingStatusConfirmed {
			return ErrInvalidTransition
		}
		b.Status = BookingStatusCompleted
		b.PaymentStatus = PaymentStatusPaid
	default:
		return ErrUnknownAction
	}
	return nil
}
