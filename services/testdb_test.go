package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory database with a sqlite-friendly version of
// the schema, so the service layer can be exercised without Postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	schema := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'member',
			phone TEXT,
			location TEXT,
			bio TEXT,
			skills_offered TEXT,
			skills_wanted TEXT,
			profile_picture_url TEXT,
			reset_password_token TEXT,
			reset_password_token_expires_at DATETIME,
			is_active NUMERIC DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE skills (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_name TEXT NOT NULL,
			user_email TEXT,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price REAL NOT NULL DEFAULT 0,
			duration INTEGER NOT NULL DEFAULT 60,
			location TEXT,
			availability TEXT,
			rating REAL DEFAULT 0,
			total_bookings INTEGER DEFAULT 0,
			last_booked TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE bookings (
			id TEXT PRIMARY KEY,
			booking_number TEXT NOT NULL UNIQUE,
			skill_id TEXT NOT NULL,
			skill_title TEXT NOT NULL,
			skill_category TEXT,
			teacher_id TEXT NOT NULL,
			teacher_name TEXT NOT NULL,
			teacher_email TEXT,
			student_id TEXT NOT NULL,
			student_name TEXT NOT NULL,
			student_email TEXT,
			date TEXT NOT NULL,
			time TEXT NOT NULL,
			duration INTEGER NOT NULL DEFAULT 60,
			location TEXT,
			price REAL NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'INR',
			payment_method TEXT NOT NULL DEFAULT 'cash',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			payment_notes TEXT DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			cancellation_reason TEXT,
			notes TEXT DEFAULT '',
			teacher_read NUMERIC DEFAULT 0,
			student_read NUMERIC DEFAULT 1,
			review_rating INTEGER DEFAULT 0,
			review_comment TEXT DEFAULT '',
			reviewed_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE conversations (
			id TEXT PRIMARY KEY,
			key TEXT NOT NULL UNIQUE,
			participant_one_id TEXT NOT NULL,
			participant_one_name TEXT NOT NULL,
			participant_two_id TEXT NOT NULL,
			participant_two_name TEXT NOT NULL,
			last_message TEXT DEFAULT '',
			last_sender_id TEXT,
			unread_one INTEGER DEFAULT 0,
			unread_two INTEGER DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE messages (
			id TEXT PRIMARY KEY,
			conversation_key TEXT NOT NULL,
			sender_id TEXT NOT NULL,
			sender_name TEXT NOT NULL,
			receiver_id TEXT NOT NULL,
			receiver_name TEXT NOT NULL,
			content TEXT NOT NULL,
			read NUMERIC DEFAULT 0,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}
