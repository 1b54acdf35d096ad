package errors

import (
	"math"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data/flare.json", false},
		{"absolute", "/tmp/out.svg", false},
		{"with spaces", "my data.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "flare", false},
		{"path-like", "flare/analytics/cluster", false},
		{"empty", "", true},
		{"control", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateNodeID(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"valid", 800, 600, false},
		{"zero width", 0, 600, true},
		{"negative height", 800, -1, true},
		{"nan", math.NaN(), 600, true},
		{"inf", 800, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateDimensions(tt.w, tt.h); (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSort(t *testing.T) {
	for _, s := range []string{"", "asc", "desc", "none", "DESC"} {
		if err := ValidateSort(s); err != nil {
			t.Errorf("ValidateSort(%q) = %v, want nil", s, err)
		}
	}
	if err := ValidateSort("random"); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("ValidateSort(random) = %v, want INVALID_CONFIG", err)
	}
}

func TestValidateRatio(t *testing.T) {
	if err := ValidateRatio("squareRatio", 1.618); err != nil {
		t.Errorf("ValidateRatio(1.618) = %v", err)
	}
	for _, v := range []float64{0, -1, math.NaN()} {
		if err := ValidateRatio("squareRatio", v); err == nil {
			t.Errorf("ValidateRatio(%v) = nil, want error", v)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := map[string]bool{"svg": true, "png": true}
	if err := ValidateFormat("svg", allowed); err != nil {
		t.Errorf("ValidateFormat(svg) = %v", err)
	}
	if err := ValidateFormat("bmp", allowed); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(bmp) = %v, want INVALID_FORMAT", err)
	}
}
