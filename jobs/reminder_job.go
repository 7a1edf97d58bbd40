package jobs

import (
	"log"
	"time"

	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
	"github.com/sahilm27/skill_swap/notifications"
)

// SendSessionReminders emails both parties of confirmed sessions starting
// in roughly an hour. Session times are stored as date and time strings,
// so candidates are narrowed by date and filtered after parsing.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var candidates []models.Booking
	err := database.DB.
		Where("status = ? AND date IN ?", models.BookingStatusConfirmed,
			[]string{lowerBound.Format("2006-01-02"), upperBound.Format("2006-01-02")}).
		Find(&candidates).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, booking := range candidates {
		start, err := booking.SessionStart()
		if err != nil {
			log.Printf("Booking %s has an unparseable session time: %v", booking.ID, err)
			continue
		}
		if start.Before(lowerBound) || start.After(upperBound) {
			continue
		}

		log.Printf("Sending reminder for booking %s", booking.BookingNumber)
		subject, body := notifications.SessionReminderEmail(booking.SkillTitle, booking.Date, booking.Time)
		go notifications.SendEmail(booking.StudentName, booking.StudentEmail, subject, body)
		go notifications.SendEmail(booking.TeacherName, booking.TeacherEmail, subject, body)
	}
}
