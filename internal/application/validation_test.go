package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "key",
			value:     "INV",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "key",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "folder",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateRequiredMessage(t *testing.T) {
	err := ValidateRequired("folder", "")
	if err == nil || err.Error() != "folder: destination folder is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input   string
		count   int
		want    int
		wantErr bool
	}{
		{"1", 3, 0, false},
		{" 3 ", 3, 2, false},
		{"0", 3, 0, true},
		{"4", 3, 0, true},
		{"abc", 3, 0, true},
		{"", 3, 0, true},
		{"25", 30, 24, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChoice(tt.input, tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseChoice(%q, %d) error = %v, wantErr %v", tt.input, tt.count, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInput) {
				t.Errorf("expected ErrInput, got %v", err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseChoice(%q, %d) = %d, expected %d", tt.input, tt.count, got, tt.want)
			}
		})
	}
}

func TestTypedErrorsMatchSentinels(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err      error
		sentinel error
	}{
		{&ConfigError{Path: "rules.txt", Reason: "missing", Err: cause}, ErrConfig},
		{&ExtractionError{Path: "a.pdf", Err: cause}, ErrExtraction},
		{&MoveError{Source: "a.pdf", Folder: "X", Reason: "gone"}, ErrMove},
		{&PersistError{Path: "rules.txt", Err: cause}, ErrPersist},
		{&InputError{Input: "9", Reason: "out of range"}, ErrInput},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.sentinel) {
			t.Errorf("%T should match %v", tt.err, tt.sentinel)
		}
	}
	if !errors.Is(&ConfigError{Path: "x", Reason: "y", Err: cause}, cause) {
		t.Error("ConfigError should unwrap to its cause")
	}
}
