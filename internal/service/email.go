package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendInvite(ctx context.Context, email, link string, expiresAt time.Time) error {
	subject := "You are invited to register"
	plainText := fmt.Sprintf(
		"Hello,\n\nYou have been invited to register as a field agent.\n\nComplete your registration here: %s\n\nThe link expires on %s.",
		link, expiresAt.Format("2006-01-02"))
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Agent Registration</h2>
				<p>You have been invited to register as a field agent.</p>
				<p><a href="%s">Complete your registration</a></p>
				<p>The link expires on <strong>%s</strong>.</p>
			</body>
		</html>
	`, link, expiresAt.Format("2006-01-02"))

	return s.send(email, "", subject, plainText, htmlContent)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, agentName, serial string, expected time.Time) error {
	subject := fmt.Sprintf("Equipment return overdue: %s", serial)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nThe equipment with serial number %s was expected back on %s. Please return it or contact your supervisor.",
		agentName, serial, expected.Format("2006-01-02"))
	htmlContent := fmt.Sprintf(`
		<html>
			<body>
				<h2>Return Reminder</h2>
				<p>Hello %s,</p>
				<p>The equipment with serial number <strong>%s</strong> was expected back on <strong>%s</strong>.</p>
				<p>Please return it or contact your supervisor.</p>
			</body>
		</html>
	`, agentName, serial, expected.Format("2006-01-02"))

	return s.send(email, agentName, subject, plainText, htmlContent)
}
