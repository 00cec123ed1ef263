package app

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/cimillas/eventfinder/internal/domain"
	"github.com/cimillas/eventfinder/internal/mailer"
)

type Sender interface {
	Configured() bool
	Send(ctx context.Context, email mailer.Email) (map[string]any, error)
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div style="max-width: 600px; margin: 0 auto; font-family: Arial, sans-serif;">
  <div style="background: linear-gradient(135deg, #8B5CF6 0%, #EC4899 100%); padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px;">South African Events</h1>
  </div>
  <div style="padding: 30px; background-color: #f9fafb;">
    <h2 style="color: #1f2937; margin-bottom: 20px;">Event Registration Confirmation</h2>
    <div style="background: white; padding: 20px; border-radius: 8px; border-left: 4px solid #8B5CF6;">
      <h3 style="color: #8B5CF6; margin-top: 0;">{{.Title}}</h3>
      <p style="margin: 10px 0;"><strong>Date:</strong> {{.Date}}</p>
      <p style="margin: 10px 0;"><strong>Location:</strong> {{.Location}}</p>
    </div>
    <p style="margin-top: 20px;">You have successfully registered for this event. We look forward to seeing you there!</p>
    <div style="margin-top: 30px; text-align: center;">
      <a href="{{.MyEventsURL}}" style="background: #8B5CF6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">View My Events</a>
    </div>
  </div>
  <div style="padding: 20px; text-align: center; color: #6b7280; font-size: 14px;">
    <p>Thank you for using South African Events!</p>
  </div>
</div>`))

type confirmationData struct {
	Title       string
	Date        string
	Location    string
	MyEventsURL string
}

// NotificationService sends transactional email. Event details, when complete,
// replace the caller's HTML with the registration confirmation layout.
type NotificationService struct {
	sender  Sender
	baseURL string
	loc     *time.Location
	logger  *slog.Logger
}

type NotificationServiceOption func(*NotificationService)

// WithNotificationLogger sets where provider failures are logged.
func WithNotificationLogger(logger *slog.Logger) NotificationServiceOption {
	return func(s *NotificationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewNotificationService links confirmations to baseURL and prints dates in loc.
func NewNotificationService(sender Sender, baseURL string, loc *time.Location, opts ...NotificationServiceOption) *NotificationService {
	if loc == nil {
		loc = time.UTC
	}
	s := &NotificationService{sender: sender, baseURL: strings.TrimRight(baseURL, "/"), loc: loc, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type NotifyInput struct {
	To            string `json:"to" validate:"required,email"`
	Subject       string `json:"subject" validate:"required,max=200"`
	HTML          string `json:"html"`
	EventTitle    string `json:"eventTitle"`
	EventDate     string `json:"eventDate"`
	EventLocation string `json:"eventLocation"`
}

// Notify sends one email and returns the provider's response body.
func (s *NotificationService) Notify(ctx context.Context, in NotifyInput) (map[string]any, error) {
	if s.sender == nil || !s.sender.Configured() {
		return nil, domain.ErrMailerNotConfigured
	}
	in.To = strings.TrimSpace(in.To)
	if in.To == "" {
		return nil, domain.ErrRecipientRequired
	}
	if err := validateInput(in, nil); err != nil {
		return nil, err
	}

	html := in.HTML
	if in.EventTitle != "" && in.EventDate != "" && in.EventLocation != "" {
		rendered, err := s.renderConfirmation(confirmationData{
			Title:    in.EventTitle,
			Date:     in.EventDate,
			Location: in.EventLocation,
		})
		if err != nil {
			return nil, err
		}
		html = rendered
	}

	resp, err := s.sender.Send(ctx, mailer.Email{To: in.To, Subject: in.Subject, HTML: html})
	if err != nil {
		s.logger.Warn("email delivery failed", "subject", in.Subject, "error", err)
		return nil, fmt.Errorf("send email: %w", err)
	}
	return resp, nil
}

// SendConfirmation emails the registration confirmation for event to the address.
func (s *NotificationService) SendConfirmation(ctx context.Context, to string, event domain.Event) error {
	location := event.Location
	if event.City != "" {
		location = strings.TrimPrefix(location+", "+event.City, ", ")
	}
	_, err := s.Notify(ctx, NotifyInput{
		To:            to,
		Subject:       "Registration confirmed: " + event.Title,
		EventTitle:    event.Title,
		EventDate:     domain.ScheduleLabel(event.StartsAt, event.EndsAt, s.loc),
		EventLocation: location,
	})
	return err
}

func (s *NotificationService) renderConfirmation(data confirmationData) (string, error) {
	data.MyEventsURL = s.baseURL + "/my-events"
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}
