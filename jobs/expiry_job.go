package jobs

import (
	"log"
	"time"

	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
	"github.com/sahilm27/skill_swap/websocket"
)

// ExpireStaleRequests cancels pending bookings whose session time has
// already passed without the teacher responding, so they do not sit in
// the teacher's request list forever.
func ExpireStaleRequests() {
	log.Println("Running job: ExpireStaleRequests...")

	now := time.Now()

	var pending []models.Booking
	err := database.DB.
		Where("status = ? AND date <= ?", models.BookingStatusPending, now.Format("2006-01-02")).
		Find(&pending).Error
	if err != nil {
		log.Printf("Error checking for stale requests: %v", err)
		return
	}

	expired := 0
	for _, booking := range pending {
		start, err := booking.SessionStart()
		if err != nil || start.After(now) {
			continue
		}

		reason := "Request expired"
		res := database.DB.Model(&models.Booking{}).
			Where("id = ? AND status = ?", booking.ID, models.BookingStatusPending).
			Updates(map[string]interface{}{
				"status":              models.BookingStatusCancelled,
				"payment_status":      models.PaymentStatusCancelled,
				"cancellation_reason": reason,
			})
		if res.Error != nil {
			log.Printf("Failed to expire booking %s: %v", booking.ID, res.Error)
			continue
		}
		if res.RowsAffected == 0 {
			continue
		}

		booking.Status = models.BookingStatusCancelled
		booking.PaymentStatus = models.PaymentStatusCancelled
		booking.CancellationReason = &reason
		websocket.NotifyUsers(websocket.Event{Type: websocket.EventBookingUpdated, Payload: &booking},
			booking.StudentID, booking.TeacherID)
		expired++
	}

	if expired > 0 {
		log.Printf("Expired %d stale booking request(s)", expired)
	}
}
