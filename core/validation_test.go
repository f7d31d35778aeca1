package core

import (
	"errors"
	"testing"
)

func TestValidateCode(t *testing.T) {
	tests := []struct {
		name    string
		code    *Code
		wantErr error
	}{
		{
			name: "valid code",
			code: &Code{
				Id:          "E11.621",
				Description: "Type 2 diabetes mellitus with foot ulcer",
				Chapter:     "IV. Endocrine, nutritional and metabolic diseases",
			},
			wantErr: nil,
		},
		{
			name: "valid code with empty vector",
			code: &Code{
				Id:          "I21.9",
				Description: "Acute myocardial infarction, unspecified",
				Vector:      nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil code",
			code:    nil,
			wantErr: ErrInvalidCode,
		},
		{
			name: "empty identifier",
			code: &Code{
				Description: "Some description",
			},
			wantErr: ErrInvalidCode,
		},
		{
			name: "empty description",
			code: &Code{
				Id: "J45.0",
			},
			wantErr: ErrEmptyDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCode(tt.code)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCode() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTopK(t *testing.T) {
	if err := ValidateTopK(1); err != nil {
		t.Errorf("ValidateTopK(1) = %v, want nil", err)
	}
	if err := ValidateTopK(20); err != nil {
		t.Errorf("ValidateTopK(20) = %v, want nil", err)
	}
	for _, k := range []int{0, -1, -100} {
		if err := ValidateTopK(k); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ValidateTopK(%d) = %v, want ErrInvalidArgument", k, err)
		}
	}
}

func TestValidateMinConfidence(t *testing.T) {
	for _, c := range []float64{0, 0.5, 1} {
		if err := ValidateMinConfidence(c); err != nil {
			t.Errorf("ValidateMinConfidence(%g) = %v, want nil", c, err)
		}
	}
	for _, c := range []float64{-0.01, 1.01, 2} {
		if err := ValidateMinConfidence(c); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ValidateMinConfidence(%g) = %v, want ErrInvalidArgument", c, err)
		}
	}
}

func TestClampConfidence(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.2, 1},
		{1.0909, 1},
	}

	for _, tt := range tests {
		if got := ClampConfidence(tt.in); got != tt.want {
			t.Errorf("ClampConfidence(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
