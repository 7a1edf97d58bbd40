package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/handlers"
	"github.com/sahilm27/skill_swap/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Get("/:bookingId", handlers.GetBooking)
	booking.Post("/:bookingId/confirm", handlers.ConfirmBooking)
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)
	booking.Post("/:bookingId/mark-paid", handlers.MarkBookingPaid)
	booking.Post("/:bookingId/complete", handlers.CompleteBooking)
	booking.Post("/:bookingId/review", handlers.CreateReview)
	booking.Post("/:bookingId/read", handlers.MarkBookingRead)
}
