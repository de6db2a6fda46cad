package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Color    string `validate:"omitempty,hex_color"`
	Month    string `validate:"omitempty,financial_month"`
	StartDay int    `validate:"start_day"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{"valid", sample{Color: "#ff8800", Month: "2024-03", StartDay: 25}, false},
		{"short color", sample{Color: "#f80", StartDay: 1}, false},
		{"bad color", sample{Color: "orange", StartDay: 1}, true},
		{"bad month", sample{Month: "2024-13", StartDay: 1}, true},
		{"month without padding", sample{Month: "2024-3", StartDay: 1}, true},
		{"start day too high", sample{StartDay: 29}, true},
		{"start day zero", sample{StartDay: 0}, true},
		{"start day max", sample{StartDay: 28}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}
