package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
	"gorm.io/datatypes"
)

type UpdateProfileRequest struct {
	FullName          *string   `json:"full_name"`
	Phone             *string   `json:"phone"`
	Location          *string   `json:"location"`
	Bio               *string   `json:"bio"`
	SkillsOffered     *[]string `json:"skills_offered"`
	SkillsWanted      *[]string `json:"skills_wanted"`
	ProfilePictureURL *string   `json:"profile_picture_url"`
}

func GetProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID := claims["user_id"].(string)

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Location != nil {
		user.Location = req.Location
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.SkillsOffered != nil {
		raw, _ := json.Marshal(*req.SkillsOffered)
		user.SkillsOffered = datatypes.JSON(raw)
	}
	if req.SkillsWanted != nil {
		raw, _ := json.Marshal(*req.SkillsWanted)
		user.SkillsWanted = datatypes.JSON(raw)
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}

// GetPublicProfile exposes another member's profile for listing pages.
func GetPublicProfile(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var skills []models.Skill
	database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&skills)

	return c.JSON(fiber.Map{
		"id":             user.ID,
		"full_name":      user.FullName,
		"location":       user.Location,
		"bio":            user.Bio,
		"skills_offered": user.SkillsOffered,
		"skills_wanted":  user.SkillsWanted,
		"skills":         skills,
	})
}
