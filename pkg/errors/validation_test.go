package errors

import (
	"testing"
)

func TestValidateTemplateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "hall", false},
		{"valid with dash", "spawn-3x3", false},
		{"valid with underscore", "dead_end", false},
		{"valid digits", "room2", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 100)), true},
		{"uppercase", "Hall", true},
		{"space", "big hall", true},
		{"leading dash", "-hall", true},
		{"slash", "a/b", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTemplate) {
				t.Errorf("ValidateTemplateName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTemplate)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "catalog.toml", false},
		{"valid nested", "configs/roomgen.toml", false},
		{"valid absolute", "/etc/roomgen/catalog.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"null byte", "foo\x00.toml", true},
		{"control char", "foo\x1b.toml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		lo, hi  int
		wantErr bool
	}{
		{"inside", 5, 1, 10, false},
		{"at lower bound", 1, 1, 10, false},
		{"at upper bound", 10, 1, 10, false},
		{"below", 0, 1, 10, true},
		{"above", 11, 1, 10, true},
		{"unbounded above", 1 << 20, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange("teams", tt.value, tt.lo, tt.hi)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRange(%d, %d, %d) error = %v, wantErr %v", tt.value, tt.lo, tt.hi, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidConfig {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	if err := ValidateChoice("format", "json", "text", "json", "svg"); err != nil {
		t.Errorf("ValidateChoice(json) error = %v", err)
	}
	err := ValidateChoice("format", "pdf", "text", "json", "svg")
	if err == nil {
		t.Fatal("ValidateChoice(pdf) should fail")
	}
	if want := `invalid format: "pdf" (must be one of: text, json, svg)`; UserMessage(err) != want {
		t.Errorf("UserMessage() = %q, want %q", UserMessage(err), want)
	}
}
