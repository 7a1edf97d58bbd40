package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
	"github.com/sahilm27/skill_swap/notifications"
	"github.com/sahilm27/skill_swap/services"
	"github.com/sahilm27/skill_swap/websocket"
)

type CreateBookingRequest struct {
	SkillID string `json:"skill_id" validate:"required,uuid"`
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Time    string `json:"time" validate:"required,datetime=15:04"`
	Notes   string `json:"notes,omitempty"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func bookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrBookingNotFound), errors.Is(err, services.ErrSkillNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotTeacher), errors.Is(err, services.ErrNotStudent),
		errors.Is(err, services.ErrNotParticipant):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrBookingConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var student models.User
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	skillID, _ := uuid.Parse(req.SkillID)
	booking, err := services.CreateBooking(database.DB, student, services.CreateBookingInput{
		SkillID: skillID,
		Date:    req.Date,
		Time:    req.Time,
		Notes:   req.Notes,
	})
	if err != nil {
		return c.Status(bookingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	go func() {
		subject, body := notifications.BookingRequestedEmail(booking.SkillTitle, booking.StudentName, booking.Date, booking.Time)
		notifications.SendEmail(booking.TeacherName, booking.TeacherEmail, subject, body)
	}()
	websocket.NotifyUsers(websocket.Event{Type: websocket.EventBookingNew, Payload: booking}, booking.TeacherID)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func transitionBooking(c *fiber.Ctx, action, reason string) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := services.TransitionBooking(database.DB, bookingID, actorID, action, reason)
	if err != nil {
		return c.Status(bookingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	otherID := booking.StudentID
	otherName, otherEmail := booking.StudentName, booking.StudentEmail
	if actorID == booking.StudentID {
		otherID = booking.TeacherID
		otherName, otherEmail = booking.TeacherName, booking.TeacherEmail
	}

	switch action {
	case models.BookingActionConfirm:
		go func() {
			subject, body := notifications.BookingConfirmedEmail(booking.SkillTitle, booking.TeacherName, booking.Date, booking.Time)
			notifications.SendEmail(otherName, otherEmail, subject, body)
		}()
	case models.BookingActionCancel:
		go func() {
			subject, body := notifications.BookingCancelledEmail(booking.SkillTitle, *booking.CancellationReason)
			notifications.SendEmail(otherName, otherEmail, subject, body)
		}()
	}
	websocket.NotifyUsers(websocket.Event{Type: websocket.EventBookingUpdated, Payload: booking}, otherID)

	return c.JSON(booking)
}

func ConfirmBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingActionConfirm, "")
}

func CancelBooking(c *fiber.Ctx) error {
	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	return transitionBooking(c, models.BookingActionCancel, req.Reason)
}

func MarkBookingPaid(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingActionMarkPaid, "")
}

func CompleteBooking(c *fiber.Ctx) error {
	return transitionBooking(c, models.BookingActionComplete, "")
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := services.SubmitReview(database.DB, bookingID, studentID, req.Rating, req.Comment)
	if err != nil {
		return c.Status(bookingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	websocket.NotifyUsers(websocket.Event{Type: websocket.EventBookingUpdated, Payload: booking}, booking.TeacherID)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func MarkBookingRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	if err := services.MarkBookingRead(database.DB, bookingID, actorID); err != nil {
		return c.Status(bookingErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Booking marked as read"})
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	role := c.Query("role", "student")
	if role != "student" && role != "teacher" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "role must be student or teacher"})
	}

	bookings, err := services.BookingsForUser(database.DB, userID, role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch bookings"})
	}

	return c.JSON(bookings)
}

func GetBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", c.Params("bookingId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}
	if !booking.IsParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not part of this booking"})
	}

	return c.JSON(booking)
}
