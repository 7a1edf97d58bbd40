package database

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	config "github.com/sahilm27/skill_swap/configs"
	"github.com/sahilm27/skill_swap/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.Booking{},
		&models.Conversation{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// RepairSkillAvailability migrates legacy listings whose availability was
// persisted as a stringified array (e.g. "['weekday-mornings']") back into
// a real JSON list. Rows that already hold a list are left alone.
func RepairSkillAvailability() {
	var skills []models.Skill
	if err := DB.Find(&skills).Error; err != nil {
		log.Printf("Availability repair skipped: %v", err)
		return
	}

	fixed := 0
	for _, skill := range skills {
		if len(skill.Availability) == 0 {
			continue
		}

		var asList []string
		if err := json.Unmarshal(skill.Availability, &asList); err == nil {
			continue
		}

		var asString string
		if err := json.Unmarshal(skill.Availability, &asString); err != nil {
			log.Printf("Could not parse availability for skill %s: %s", skill.ID, skill.Availability)
			continue
		}
		if !strings.Contains(asString, "[") {
			continue
		}

		if err := json.Unmarshal([]byte(strings.ReplaceAll(asString, "'", `"`)), &asList); err != nil {
			log.Printf("Could not parse availability for skill %s: %s", skill.ID, asString)
			continue
		}

		repaired, _ := json.Marshal(asList)
		if err := DB.Model(&models.Skill{}).Where("id = ?", skill.ID).
			Update("availability", datatypes.JSON(repaired)).Error; err != nil {
			log.Printf("Failed to repair skill %s: %v", skill.ID, err)
			continue
		}
		fixed++
	}

	if fixed > 0 {
		log.Printf("✅ Repaired availability on %d skill(s)", fixed)
	}
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
