package errors

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeProvider, cause, "ephemeris lookup failed")

	if err.Code != ErrCodeProvider {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeProvider)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidBody, "bad body"), ErrCodeInvalidBody, true},
		{"non-matching code", New(ErrCodeInvalidBody, "bad body"), ErrCodeProvider, false},
		{"wrapped matching", Wrap(ErrCodeProvider, errors.New("x"), "wrapped"), ErrCodeProvider, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"invalid body", New(ErrCodeInvalidBody, "x"), true},
		{"polar latitude", New(ErrCodePolarLatitude, "x"), true},
		{"invalid instant", New(ErrCodeInvalidInstant, "x"), true},
		{"provider", New(ErrCodeProvider, "x"), false},
		{"internal", New(ErrCodeInternal, "x"), false},
		{"plain error", errors.New("plain"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDomain(tt.err); got != tt.want {
				t.Errorf("IsDomain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeTimeout, "slow")); code != ErrCodeTimeout {
		t.Errorf("GetCode = %v, want %v", code, ErrCodeTimeout)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode on plain error = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	if msg := UserMessage(New(ErrCodeInvalidBody, "unknown body: Ceres")); msg != "unknown body: Ceres" {
		t.Errorf("UserMessage = %q", msg)
	}
	if msg := UserMessage(errors.New("plain failure")); msg != "plain failure" {
		t.Errorf("UserMessage on plain error = %q", msg)
	}
}

func TestValidateLatitude(t *testing.T) {
	tests := []struct {
		name     string
		lat      float64
		wantCode Code
	}{
		{"equator", 0, ""},
		{"mid north", 52.52, ""},
		{"mid south", -33.87, ""},
		{"near pole", 89.99, ""},
		{"north pole", 90, ErrCodePolarLatitude},
		{"south pole", -90, ErrCodePolarLatitude},
		{"beyond pole", 120, ErrCodePolarLatitude},
		{"NaN", math.NaN(), ErrCodeInvalidInput},
		{"Inf", math.Inf(1), ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLatitude(tt.lat)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateLatitude(%v) = %v, want nil", tt.lat, err)
				}
				return
			}
			if GetCode(err) != tt.wantCode {
				t.Errorf("ValidateLatitude(%v) code = %v, want %v", tt.lat, GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateLongitude(t *testing.T) {
	if err := ValidateLongitude(-200); err != nil {
		t.Errorf("out-of-range longitude should normalize, got %v", err)
	}
	if err := ValidateLongitude(math.NaN()); GetCode(err) != ErrCodeInvalidInput {
		t.Errorf("NaN longitude code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
	}
}

func TestValidateInstant(t *testing.T) {
	if err := ValidateInstant(time.Time{}); GetCode(err) != ErrCodeInvalidInstant {
		t.Errorf("zero instant code = %v, want %v", GetCode(err), ErrCodeInvalidInstant)
	}
	if err := ValidateInstant(time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Errorf("valid instant = %v, want nil", err)
	}
}
