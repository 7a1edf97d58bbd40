package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/sahilm27/skill_swap/configs"
)

type BrevoService struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

var EmailClient *BrevoService

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func InitEmailService() {
	apiKey := config.Config("BREVO_API_KEY")
	senderEmail := config.Config("EMAIL_SENDER")
	senderName := config.Config("EMAIL_SENDER_NAME")

	if apiKey == "" || senderEmail == "" || senderName == "" {
		log.Println("⚠️ Email service not configured. Missing API Key, Sender Email, or Sender Name.")
		EmailClient = nil
		return
	}

	EmailClient = &BrevoService{
		APIKey:      apiKey,
		SenderEmail: senderEmail,
		SenderName:  senderName,
	}
	log.Println("✅ Email service initialized")
}

// SendEmail delivers a transactional email through Brevo. Callers fire it
// from a goroutine; failures are logged and never fail the request.
func SendEmail(toName, toEmail, subject, htmlContent string) {
	if EmailClient == nil {
		log.Printf("Email service disabled, skipping %q to %s", subject, toEmail)
		return
	}
	if strings.TrimSpace(toEmail) == "" {
		return
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": EmailClient.SenderName, "email": EmailClient.SenderEmail},
		To:          []map[string]string{{"name": toName, "email": toEmail}},
		Subject:     subject,
		HTMLContent: htmlContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal email payload: %v", err)
		return
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.brevo.com/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		log.Printf("Failed to build email request: %v", err)
		return
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", EmailClient.APIKey)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", toEmail, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Email API returned %d for %s: %s", resp.StatusCode, toEmail, string(respBody))
		return
	}
	log.Printf("📧 Email %q sent to %s", subject, toEmail)
}

// Booking lifecycle templates.

func BookingRequestedEmail(skillTitle, studentName, date, timeOfDay string) (string, string) {
	return "🎯 New Booking Request!",
		fmt.Sprintf("<h1>New Booking Request</h1><p>%s wants to book <strong>%s</strong> on %s at %s. Log in to confirm or decline.</p>",
			studentName, skillTitle, date, timeOfDay)
}

func BookingConfirmedEmail(skillTitle, teacherName, date, timeOfDay string) (string, string) {
	return "Your Session is Confirmed!",
		fmt.Sprintf("<h1>Session Confirmed</h1><p>%s confirmed your booking for <strong>%s</strong> on %s at %s. Remember payment is in cash at the start of the session.</p>",
			teacherName, skillTitle, date, timeOfDay)
}

func BookingCancelledEmail(skillTitle, reason string) (string, string) {
	return "Booking Cancelled",
		fmt.Sprintf("<h1>Booking Cancelled</h1><p>Your booking for <strong>%s</strong> has been cancelled. Reason: %s</p>", skillTitle, reason)
}

func SessionReminderEmail(skillTitle, date, timeOfDay string) (string, string) {
	return "⏰ Session Reminder",
		fmt.Sprintf("<h1>Upcoming Session</h1><p>Your session for <strong>%s</strong> starts at %s on %s.</p>", skillTitle, timeOfDay, date)
}
