package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm27/skill_swap/models"
	"github.com/sahilm27/skill_swap/utils"
	"gorm.io/gorm"
)

var (
	ErrSkillNotFound   = errors.New("skill not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrOwnSkill        = errors.New("you cannot book your own skill")
	ErrPastSession     = errors.New("cannot book sessions in the past")
	ErrNotParticipant  = errors.New("you are not part of this booking")
	ErrNotTeacher      = errors.New("you are not the teacher for this booking")
	ErrNotStudent      = errors.New("you are not the student for this booking")
	ErrNotCompleted    = errors.New("reviews can only be submitted for completed bookings")
	ErrAlreadyReviewed = errors.New("a review for this booking has already been submitted")
	ErrBookingConflict = errors.New("booking was changed by someone else, please retry")
)

type CreateBookingInput struct {
	SkillID uuid.UUID
	Date    string // 2006-01-02
	Time    string // 15:04
	Notes   string
}

// CreateBooking creates a pending booking for a student and bumps the
// skill's booking counter in the same transaction, so the counter cannot
// drift when either write fails.
func CreateBooking(db *gorm.DB, student models.User, in CreateBookingInput) (*models.Booking, error) {
	sessionStart, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, time.Local)
	if err != nil {
		return nil, ErrPastSession
	}
	if sessionStart.Before(time.Now()) {
		return nil, ErrPastSession
	}

	var booking models.Booking
	err = db.Transaction(func(tx *gorm.DB) error {
		var skill models.Skill
		if err := tx.First(&skill, "id = ?", in.SkillID).Error; err != nil {
			return ErrSkillNotFound
		}
		if skill.UserID == student.ID {
			return ErrOwnSkill
		}

		booking = models.Booking{
			BookingNumber: utils.GenerateBookingNumber(),
			SkillID:       skill.ID,
			SkillTitle:    skill.Title,
			SkillCategory: skill.Category,
			TeacherID:     skill.UserID,
			TeacherName:   skill.UserName,
			TeacherEmail:  skill.UserEmail,
			StudentID:     student.ID,
			StudentName:   student.FullName,
			StudentEmail:  student.Email,
			Date:          in.Date,
			Time:          in.Time,
			Duration:      skill.Duration,
			Location:      skill.Location,
			Price:         skill.Price,
			Currency:      "INR",
			PaymentMethod: "cash",
			PaymentStatus: models.PaymentStatusPending,
			PaymentNotes:  "Pay in cash at the beginning of the session",
			Status:        models.BookingStatusPending,
			Notes:         in.Notes,
			TeacherRead:   false,
			StudentRead:   true,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		return tx.Model(&models.Skill{}).Where("id = ?", skill.ID).Updates(map[string]interface{}{
			"total_bookings": gorm.Expr("total_bookings + ?", 1),
			"last_booked":    in.Date,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// TransitionBooking applies a lifecycle action on behalf of an actor.
// Confirm, mark-paid and complete belong to the teacher; cancel to either
// participant. The update is guarded on the status the actor saw, so two
// racing conflicting actions cannot both win.
func TransitionBooking(db *gorm.DB, bookingID, actorID uuid.UUID, action, reason string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return ErrBookingNotFound
		}

		switch action {
		case models.BookingActionCancel:
			if !booking.IsParticipant(actorID) {
				return ErrNotParticipant
			}
			if reason == "" {
				if actorID == booking.TeacherID {
					reason = "Cancelled by teacher"
				} else {
					reason = "Cancelled by student"
				}
			}
		default:
			if booking.TeacherID != actorID {
				return ErrNotTeacher
			}
		}

		prevStatus := booking.Status
		prevPayment := booking.PaymentStatus
		if err := booking.Apply(action, reason); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":         booking.Status,
			"payment_status": booking.PaymentStatus,
			"payment_notes":  booking.PaymentNotes,
		}
		if booking.CancellationReason != nil {
			updates["cancellation_reason"] = *booking.CancellationReason
		}
		if actorID == booking.TeacherID {
			updates["teacher_read"] = true
			booking.TeacherRead = true
		} else {
			updates["student_read"] = true
			booking.StudentRead = true
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND status = ? AND payment_status = ?", booking.ID, prevStatus, prevPayment).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBookingConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// SubmitReview records the student's review on a completed booking and
// overwrites the skill's rating with it in the same transaction. The
// rating deliberately replaces the previous value rather than averaging.
func SubmitReview(db *gorm.DB, bookingID, studentID uuid.UUID, rating int, comment string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			return ErrBookingNotFound
		}
		if booking.StudentID != studentID {
			return ErrNotStudent
		}
		if booking.Status != models.BookingStatusCompleted {
			return ErrNotCompleted
		}
		if booking.ReviewRating != 0 {
			return ErrAlreadyReviewed
		}

		now := time.Now()
		booking.ReviewRating = rating
		booking.ReviewComment = comment
		booking.ReviewedAt = &now

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND review_rating = 0", booking.ID).
			Updates(map[string]interface{}{
				"review_rating":  rating,
				"review_comment": comment,
				"reviewed_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReviewed
		}

		return tx.Model(&models.Skill{}).Where("id = ?", booking.SkillID).
			Update("rating", float32(rating)).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// MarkBookingRead clears the actor's notification badge flag.
func MarkBookingRead(db *gorm.DB, bookingID, actorID uuid.UUID) error {
	var booking models.Booking
	if err := db.First(&booking, "id = ?", bookingID).Error; err != nil {
		return ErrBookingNotFound
	}
	if !booking.IsParticipant(actorID) {
		return ErrNotParticipant
	}

	field := "student_read"
	if actorID == booking.TeacherID {
		field = "teacher_read"
	}
	return db.Model(&models.Booking{}).Where("id = ?", booking.ID).Update(field, true).Error
}

// BookingsForUser lists a user's bookings in the given role, newest first.
func BookingsForUser(db *gorm.DB, userID uuid.UUID, role string) ([]models.Booking, error) {
	field := "student_id"
	if role == "teacher" {
		field = "teacher_id"
	}

	var bookings []models.Booking
	err := db.Where(field+" = ?", userID).Order("created_at desc").Find(&bookings).Error
	return bookings, err
}
