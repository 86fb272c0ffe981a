package utils

import (
	"fmt"
	"log"
	"time"

	"ieltsprep/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends one HTML email through SendGrid
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("[EMAIL] SENDGRID_API_KEY not set, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("IELTS Prep", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] error sending to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] sendgrid returned %d for %s", resp.StatusCode, toEmail)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// SendSubscriptionExpiryReminder sends an email reminder before a premium
// subscription expires
func SendSubscriptionExpiryReminder(email, name string, expiresAt time.Time) {
	if email == "" {
		return
	}
	subject := "Your IELTS Prep Premium is about to expire"
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your premium subscription expires on <b>%s</b>. "+
			"Renew now to keep access to full exam simulations and premium practice sets.</p>",
		name, expiresAt.Format("02 Jan 2006"),
	)
	if err := SendEmail(email, name, subject, body); err != nil {
		log.Printf("[EMAIL] expiry reminder to %s failed: %v", email, err)
	}
}
