package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sahilm27/skill_swap/database"
	"github.com/sahilm27/skill_swap/models"
	"gorm.io/datatypes"
)

type CreateSkillRequest struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Category     string   `json:"category" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Price        float64  `json:"price" validate:"min=0"`
	Duration     int      `json:"duration,omitempty"`
	Location     string   `json:"location,omitempty"`
	Availability []string `json:"availability,omitempty"`
}

type UpdateSkillRequest struct {
	Title        *string   `json:"title"`
	Category     *string   `json:"category"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Duration     *int      `json:"duration"`
	Location     *string   `json:"location"`
	Availability *[]string `json:"availability"`
}

func marshalAvailability(values []string) (datatypes.JSON, error) {
	for _, v := range values {
		if !models.IsValidAvailability(v) {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid availability value: "+v)
		}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw), nil
}

func CreateSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var owner models.User
	if err := database.DB.First(&owner, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	availability, err := marshalAvailability(req.Availability)
	if err != nil {
		return err
	}

	duration := req.Duration
	if duration <= 0 {
		duration = 60
	}

	skill := models.Skill{
		UserID:       owner.ID,
		UserName:     owner.FullName,
		UserEmail:    owner.Email,
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Price:        req.Price,
		Duration:     duration,
		Location:     req.Location,
		Availability: availability,
	}

	if err := database.DB.Create(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create skill"})
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

func ListSkills(c *fiber.Ctx) error {
	query := database.DB.Order("created_at desc")

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var skills []models.Skill
	if err := query.Find(&skills).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch skills"})
	}

	return c.JSON(skills)
}

func GetSkill(c *fiber.Ctx) error {
	skillID := c.Params("skillId")

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}

	return c.JSON(skill)
}

func UpdateSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	skillID := c.Params("skillId")

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	if skill.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this skill"})
	}

	var req UpdateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Title != nil {
		skill.Title = *req.Title
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.Description != nil {
		skill.Description = *req.Description
	}
	if req.Price != nil {
		skill.Price = *req.Price
	}
	if req.Duration != nil && *req.Duration > 0 {
		skill.Duration = *req.Duration
	}
	if req.Location != nil {
		skill.Location = *req.Location
	}
	if req.Availability != nil {
		availability, err := marshalAvailability(*req.Availability)
		if err != nil {
			return err
		}
		skill.Availability = availability
	}

	if err := database.DB.Save(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update skill"})
	}

	return c.JSON(skill)
}

func DeleteSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	skillID := c.Params("skillId")

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", skillID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
	}
	if skill.UserID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not own this skill"})
	}

	if err := database.DB.Delete(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete skill"})
	}

	return c.JSON(fiber.Map{"message": "Skill deleted successfully"})
}
