package validation

import (
	"testing"

	"github.com/chrisdamba/foodstore/internal/models"
)

func TestCheckoutFormSubmitEmptyAddress(t *testing.T) {
	f := NewCheckoutForm()
	_ = f.Change(FieldCity, "Springfield")
	_ = f.Change(FieldZipCode, "123456")
	_ = f.Change(FieldPhone, "5551234567")

	err := f.Submit()
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !f.Touched(FieldAddress) {
		t.Fatal("expected address touched")
	}
	if got := f.Error(FieldAddress); got != "Street address is required" {
		t.Fatalf("unexpected address error %q", got)
	}
	if errs := f.VisibleErrors(); len(errs) != 1 {
		t.Fatalf("expected only the address error, got %v", errs)
	}
}

func TestCheckoutFormDefaults(t *testing.T) {
	f := NewCheckoutForm()
	if f.Value(FieldPaymentMethod) != models.PaymentCard {
		t.Fatalf("expected card payment by default, got %q", f.Value(FieldPaymentMethod))
	}
	details := DeliveryDetails(f)
	if details.PaymentMethod != models.PaymentCard || details.Address != "" {
		t.Fatalf("unexpected details %+v", details)
	}
}

func TestChangeRevalidatesOnlyTouchedFields(t *testing.T) {
	f := NewRegisterForm()

	_ = f.Change(FieldEmail, "bad")
	if f.Error(FieldEmail) != "" {
		t.Fatal("untouched field must not show an error")
	}

	_ = f.Blur(FieldEmail)
	if f.Error(FieldEmail) != "Please enter a valid email address" {
		t.Fatalf("unexpected error after blur %q", f.Error(FieldEmail))
	}

	_ = f.Change(FieldEmail, "jane@example.com")
	if f.Error(FieldEmail) != "" {
		t.Fatalf("expected error cleared on valid change, got %q", f.Error(FieldEmail))
	}
}

func TestRegisterFormConfirmPassword(t *testing.T) {
	f := NewRegisterForm()
	_ = f.Change(FieldName, "Jane Doe")
	_ = f.Change(FieldEmail, "jane@example.com")
	_ = f.Change(FieldPassword, "Secret12")
	_ = f.Change(FieldConfirmPassword, "Secret13")

	err := f.Submit()
	errs, ok := err.(Errors)
	if !ok {
		t.Fatalf("expected Errors, got %v", err)
	}
	if errs[FieldConfirmPassword] != "Passwords do not match" || len(errs) != 1 {
		t.Fatalf("unexpected errors %v", errs)
	}

	_ = f.Change(FieldConfirmPassword, "Secret12")
	if err := f.Submit(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestLoginFormIsSubmitOnly(t *testing.T) {
	f := NewLoginForm()
	_ = f.Change(FieldEmail, "bad")
	_ = f.Blur(FieldEmail)
	if f.Error(FieldEmail) != "" {
		t.Fatal("login form must not validate on blur")
	}

	if err := f.Submit(); err == nil {
		t.Fatal("expected submit to fail")
	}
	if f.Error(FieldEmail) != "Please enter a valid email address" || f.Error(FieldPassword) != "Password is required" {
		t.Fatalf("unexpected errors %v", f.VisibleErrors())
	}

	_ = f.Change(FieldEmail, "still bad")
	if f.Error(FieldEmail) != "" {
		t.Fatal("typing must clear the field error")
	}
	if f.Error(FieldPassword) == "" {
		t.Fatal("other field errors must stay")
	}
}

func TestUnknownField(t *testing.T) {
	f := NewLoginForm()
	if err := f.Change("nope", "x"); err == nil {
		t.Fatal("expected error for unknown field")
	}
	if err := f.Blur("nope"); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestReset(t *testing.T) {
	f := NewCheckoutForm()
	_ = f.Change(FieldPaymentMethod, models.PaymentCash)
	_ = f.Submit()
	f.Reset()
	if f.Value(FieldPaymentMethod) != models.PaymentCard || f.Touched(FieldAddress) || len(f.VisibleErrors()) != 0 {
		t.Fatal("expected pristine form after reset")
	}
}
