package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"campus-housing-backend/internal/domain"
	"campus-housing-backend/internal/logger"
	"campus-housing-backend/internal/utils"
)

type mailSender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridEmailService struct {
	client    mailSender
	fromEmail string
	fromName  string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendGridEmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendGridEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, ownerName, tenantName, listingTitle string, b *domain.Booking) error {
	subject := fmt.Sprintf("New booking request: %s", listingTitle)
	body := fmt.Sprintf("Hello %s,\n\n%s has requested to book \"%s\" from %s to %s.\nTotal: $%.2f\n",
		ownerName, tenantName, listingTitle, b.StartDate.Format(utils.DateLayout), b.EndDate.Format(utils.DateLayout), b.TotalPrice)
	if b.Message != "" {
		body += fmt.Sprintf("\nMessage from %s:\n%s\n", tenantName, b.Message)
	}
	body += "\nSign in to confirm or cancel the request.\n\nThe Campus Housing Team"

	return s.send(ctx, ownerEmail, ownerName, subject, body)
}

func (s *sendGridEmailService) SendBookingStatusNotification(ctx context.Context, toEmail, toName, listingTitle string, b *domain.Booking) error {
	subject := fmt.Sprintf("Booking %s: %s", b.Status, listingTitle)
	body := fmt.Sprintf("Hello %s,\n\nThe booking for \"%s\" from %s to %s is now %s.\n\nThe Campus Housing Team",
		toName, listingTitle, b.StartDate.Format(utils.DateLayout), b.EndDate.Format(utils.DateLayout), b.Status)

	return s.send(ctx, toEmail, toName, subject, body)
}

func (s *sendGridEmailService) send(ctx context.Context, to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "send", "subject", subject)
	response, err := s.client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "subject", subject)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// logEmailService only logs. It stands in when no mail provider is configured.
type logEmailService struct{}

func NewLogEmailService() EmailService {
	return logEmailService{}
}

func (logEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, ownerName, tenantName, listingTitle string, b *domain.Booking) error {
	logger.InfoContext(ctx, "Email disabled, skipping booking request notification", "to", ownerEmail, "booking_id", b.ID)
	return nil
}

func (logEmailService) SendBookingStatusNotification(ctx context.Context, toEmail, toName, listingTitle string, b *domain.Booking) error {
	logger.InfoContext(ctx, "Email disabled, skipping booking status notification", "to", toEmail, "booking_id", b.ID, "status", b.Status)
	return nil
}
