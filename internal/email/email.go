package email

import (
	"context"
	"fmt"
	"time"

	"cartly/internal/config"
	"cartly/internal/logger"
	"cartly/internal/models"

	"github.com/mailgun/mailgun-go/v5"
)

type Service struct {
	client      mailgun.Mailgun
	domain      string
	baseURL     string
	senderEmail string
	senderName  string
	enabled     bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.MailgunDomain != "" && cfg.MailgunAPIKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:      client,
		domain:      cfg.MailgunDomain,
		baseURL:     cfg.BaseURL,
		senderEmail: cfg.MailgunSenderEmail,
		senderName:  cfg.MailgunSenderName,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendVerificationEmail delivers the account verification link a new user is
// told to check their inbox for.
func (s *Service) SendVerificationEmail(user *models.User, displayName, verificationToken string) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	if displayName == "" {
		displayName = "there"
	}

	subject := fmt.Sprintf("Verify your Cartly account, %s", displayName)
	htmlBody := s.generateVerificationHTML(user, displayName, verificationToken)
	textBody := s.generateVerificationText(user, displayName, verificationToken)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		user.Email,
	)
	message.SetHTML(htmlBody)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send verification email to %s: %w", user.Email, err)
	}

	logger.Info("Verification email sent",
		"email", user.Email,
		"message_id", resp)
	return nil
}
