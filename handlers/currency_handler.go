package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilm27/skill_swap/services"
)

// GetConversionRate returns the INR rate for a target currency, for
// displaying listing prices to visitors abroad.
func GetConversionRate(c *fiber.Ctx) error {
	target := c.Query("to", "USD")

	rate, err := services.ConvertINR(1, target)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Could not fetch conversion rate"})
	}

	return c.JSON(fiber.Map{
		"base":   "INR",
		"target": target,
		"rate":   rate,
	})
}
