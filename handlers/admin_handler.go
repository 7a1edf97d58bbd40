package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
)

func GetPlatformStats(c *fiber.Ctx) error {
	var totalUsers, totalSkills, totalBookings int64
	database.DB.Model(&models.User{}).Count(&totalUsers)
	database.DB.Model(&models.Skill{}).Count(&totalSkills)
	database.DB.Model(&models.Booking{}).Count(&totalBookings)

	statusCounts := map[string]int64{}
	for _, status := range []string{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	} {
		var count int64
		database.DB.Model(&models.Booking{}).Where("status = ?", status).Count(&count)
		statusCounts[status] = count
	}

	var paidVolume float64
	database.DB.Model(&models.Booking{}).
		Where("payment_status = ?", models.PaymentStatusPaid).
		Select("COALESCE(SUM(price), 0)").
		Row().Scan(&paidVolume)

	return c.JSON(fiber.Map{
		"total_users":    totalUsers,
		"total_skills":   totalSkills,
		"total_bookings": totalBookings,
		"bookings":       statusCounts,
		"paid_volume":    paidVolume,
	})
}

func ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Order("created_at desc").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(users)
}

func UpdateUserStatus(c *fiber.Ctx) error {
	type Request struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", c.Params("userId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = *req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(user)
}
