package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cimillas/eventfinder/internal/domain"
)

func TestNotificationService_Notify(t *testing.T) {
	t.Parallel()

	t.Run("passes caller html through", func(t *testing.T) {
		sender := &fakeSender{configured: true}
		svc := NewNotificationService(sender, "https://events.example.com/", time.UTC)

		resp, err := svc.Notify(context.Background(), NotifyInput{To: "a@example.com", Subject: "Hi", HTML: "<p>hello</p>"})
		if err != nil {
			t.Fatalf("notify: %v", err)
		}
		if resp["id"] != "email-1" {
			t.Fatalf("unexpected response %v", resp)
		}
		if len(sender.sent) != 1 || sender.sent[0].HTML != "<p>hello</p>" {
			t.Fatalf("unexpected sent %+v", sender.sent)
		}
	})

	t.Run("templates confirmation when event details are complete", func(t *testing.T) {
		sender := &fakeSender{configured: true}
		svc := NewNotificationService(sender, "https://events.example.com/", time.UTC)

		_, err := svc.Notify(context.Background(), NotifyInput{
			To: "a@example.com", Subject: "Confirmed", HTML: "<p>ignored</p>",
			EventTitle: "Jazz & Wine", EventDate: "Mar 8, 2025", EventLocation: "Cape Town",
		})
		if err != nil {
			t.Fatalf("notify: %v", err)
		}
		html := sender.sent[0].HTML
		for _, want := range []string{"Jazz &amp; Wine", "Mar 8, 2025", "Cape Town", "https://events.example.com/my-events"} {
			if !strings.Contains(html, want) {
				t.Fatalf("expected %q in body:\n%s", want, html)
			}
		}
		if strings.Contains(html, "ignored") {
			t.Fatalf("caller html should be replaced")
		}
	})

	t.Run("partial event details keep caller html", func(t *testing.T) {
		sender := &fakeSender{configured: true}
		svc := NewNotificationService(sender, "", nil)

		_, err := svc.Notify(context.Background(), NotifyInput{To: "a@example.com", Subject: "S", HTML: "<p>x</p>", EventTitle: "Jazz"})
		if err != nil || sender.sent[0].HTML != "<p>x</p>" {
			t.Fatalf("unexpected result %+v %v", sender.sent, err)
		}
	})

	t.Run("errors", func(t *testing.T) {
		ctx := context.Background()
		tests := []struct {
			name   string
			sender *fakeSender
			in     NotifyInput
			want   error
		}{
			{name: "not configured", sender: &fakeSender{}, in: NotifyInput{To: "a@example.com", Subject: "S"}, want: domain.ErrMailerNotConfigured},
			{name: "no recipient", sender: &fakeSender{configured: true}, in: NotifyInput{To: " ", Subject: "S"}, want: domain.ErrRecipientRequired},
			{name: "bad recipient", sender: &fakeSender{configured: true}, in: NotifyInput{To: "nope", Subject: "S"}, want: domain.ErrInvalidInput},
			{name: "no subject", sender: &fakeSender{configured: true}, in: NotifyInput{To: "a@example.com"}, want: domain.ErrInvalidInput},
		}
		for _, tt := range tests {
			_, err := NewNotificationService(tt.sender, "", nil).Notify(ctx, tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("%s: expected %v, got %v", tt.name, tt.want, err)
			}
		}

		boom := errors.New("provider down")
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		_, err := NewNotificationService(&fakeSender{configured: true, err: boom}, "", nil, WithNotificationLogger(logger)).
			Notify(ctx, NotifyInput{To: "a@example.com", Subject: "S"})
		if !errors.Is(err, boom) {
			t.Fatalf("expected provider error, got %v", err)
		}
		if !strings.Contains(logs.String(), "provider down") {
			t.Fatalf("expected the provider failure to be logged, got %q", logs.String())
		}
	})
}

func TestNotificationService_SendConfirmation(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{configured: true}
	svc := NewNotificationService(sender, "https://events.example.com", sast)
	event := testEvents()[0]

	if err := svc.SendConfirmation(context.Background(), "a@example.com", event); err != nil {
		t.Fatalf("send confirmation: %v", err)
	}
	sent := sender.sent[0]
	if sent.Subject != "Registration confirmed: Jazz Night" {
		t.Fatalf("unexpected subject %q", sent.Subject)
	}
	for _, want := range []string{"Mar 8, 2025 · 7:00 PM - 11:00 PM", "The Waterfront, Cape Town"} {
		if !strings.Contains(sent.HTML, want) {
			t.Fatalf("expected %q in body:\n%s", want, sent.HTML)
		}
	}
}
