package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Turquoise", false},
		{"with space", "Wet Asphalt", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDisplay(t *testing.T) {
	tests := []struct {
		name        string
		w, h, scale float64
		wantErr     bool
	}{
		{"phone", 390, 844, 3, false},
		{"desktop", 1280, 800, 1, false},
		{"zero width", 0, 844, 3, true},
		{"negative height", 390, -1, 3, true},
		{"fractional scale", 390, 844, 0.5, true},
		{"nan", math.NaN(), 844, 3, true},
		{"inf", 390, math.Inf(1), 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDisplay(tt.w, tt.h, tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDisplay() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDisplay) {
				t.Errorf("ValidateDisplay() code = %v, want %v", GetCode(err), ErrCodeInvalidDisplay)
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		schemes []string
		wantErr bool
	}{
		{"redis", "redis://localhost:6379/0", []string{"redis", "rediss"}, false},
		{"mongo", "mongodb://localhost:27017", []string{"mongodb", "mongodb+srv"}, false},
		{"wrong scheme", "http://localhost", []string{"redis"}, true},
		{"no host", "redis://", []string{"redis"}, true},
		{"empty", "", []string{"redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoint(tt.raw, tt.schemes...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
		})
	}
}
