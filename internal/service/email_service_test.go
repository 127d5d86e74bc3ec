package service

import (
	"errors"
	"testing"

	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/models"
)

func TestEmailServiceDisabled(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{Enabled: false})
	if svc.Enabled() {
		t.Fatalf("expected disabled service")
	}

	order := &models.Order{OrderNo: "VO20260101TEST"}
	if err := svc.SendOrderReceived("user@example.com", order); !errors.Is(err, ErrEmailDisabled) {
		t.Fatalf("expected ErrEmailDisabled, got %v", err)
	}
	if err := svc.SendAdminAlert("subject", "body"); !errors.Is(err, ErrEmailDisabled) {
		t.Fatalf("expected ErrEmailDisabled for admin alert, got %v", err)
	}
}

func TestEmailServiceEnabledRequiresHostAndFrom(t *testing.T) {
	svc := NewEmailService(config.EmailConfig{Enabled: true})
	if svc.Enabled() {
		t.Fatalf("expected disabled without host and sender")
	}

	svc = NewEmailService(config.EmailConfig{
		Enabled: true,
		Host:    "smtp.example.com",
		From:    "shop@example.com",
	})
	if !svc.Enabled() {
		t.Fatalf("expected enabled with host and sender")
	}
}
