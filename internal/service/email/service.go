package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	resend "github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"blood-connect/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendPatientConfirmation(ctx context.Context, toEmail, name, eventInterest, session, timeSlot string) error
}

type service struct {
	client *resend.Client
	config *config.Config
	log    *zap.Logger
}

// NewService returns a sender that logs and skips delivery when no API key is set.
func NewService(cfg *config.Config, log *zap.Logger) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{
		client: client,
		config: cfg,
		log:    log.Named("email"),
	}
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout.html", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	if s.client == nil {
		s.log.Debug("email delivery disabled", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Blood Connect <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	data := struct {
		Title string
		Name  string
		Link  string
	}{
		Title: "Welcome to Blood Connect",
		Name:  name,
		Link:  fmt.Sprintf("https://%s", s.config.Domain),
	}
	return s.sendEmail(toEmail, "Welcome to Blood Connect!", "welcome.html", data)
}

func (s *service) SendPatientConfirmation(ctx context.Context, toEmail, name, eventInterest, session, timeSlot string) error {
	data := struct {
		Title             string
		Name              string
		EventInterest     string
		PreferredSession  string
		PreferredTimeSlot string
	}{
		Title:             "Registration received",
		Name:              name,
		EventInterest:     eventInterest,
		PreferredSession:  session,
		PreferredTimeSlot: timeSlot,
	}
	return s.sendEmail(toEmail, "Your registration is confirmed", "patient_confirmation.html", data)
}
