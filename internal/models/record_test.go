package models

import (
	"strings"
	"testing"
)

func TestAddContentInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   AddContentInput
		wantErr string // failing field, or "" for valid
	}{
		{"valid minimal", AddContentInput{UserID: "U1", Content: "hello"}, ""},
		{"valid with source and metadata", AddContentInput{
			UserID: "U1", Content: "hello", Source: "notes.txt",
			Metadata: map[string]interface{}{"lang": "en"},
		}, ""},
		{"missing user_id", AddContentInput{Content: "hello"}, "user_id"},
		{"user_id at limit", AddContentInput{UserID: "123456789", Content: "x"}, ""},
		{"user_id too long", AddContentInput{UserID: "1234567890", Content: "x"}, "user_id"},
		{"empty content", AddContentInput{UserID: "U1"}, "content"},
		{"source at limit", AddContentInput{UserID: "U1", Content: "x", Source: strings.Repeat("s", 255)}, ""},
		{"source too long", AddContentInput{UserID: "U1", Content: "x", Source: strings.Repeat("s", 256)}, "source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if _, ok := fieldReasons(t, err)[tt.wantErr]; !ok {
				t.Errorf("expected failure for field %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidationError_message(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("user_id", "is required")
	ve.Add("content", "cannot be empty")
	err := ve.OrNil()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	// Fields are sorted, so content comes first.
	if !strings.Contains(msg, "content cannot be empty; user_id is required") {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestValidationError_orNilEmpty(t *testing.T) {
	ve := &ValidationError{}
	if err := ve.OrNil(); err != nil {
		t.Errorf("empty ValidationError should yield nil, got %v", err)
	}
}
