package api

import (
	"strings"
	"testing"
)

func TestValidateCredentials(t *testing.T) {
	cfg := DefaultValidationConfig()

	tests := []struct {
		name      string
		creds     Credentials
		wantParam string // empty means valid
	}{
		{"valid", Credentials{Email: "a@x.com", Password: "pw123"}, ""},
		{"missing email", Credentials{Password: "pw123"}, "email"},
		{"blank email", Credentials{Email: "   ", Password: "pw123"}, "email"},
		{"missing password", Credentials{Email: "a@x.com"}, "password"},
		{"email too long", Credentials{Email: strings.Repeat("a", 321), Password: "pw"}, "email"},
		{"weak password accepted", Credentials{Email: "a@x.com", Password: "1"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(&tt.creds, cfg)
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error for param %q", tt.wantParam)
			}
			if err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
			if err.Type != ErrorTypeInvalidRequest {
				t.Errorf("Type = %q, want %q", err.Type, ErrorTypeInvalidRequest)
			}
		})
	}
}

func TestValidateAnalyzeRequest(t *testing.T) {
	cfg := ValidationConfig{MaxTextSize: 16}

	if err := ValidateAnalyzeRequest(&AnalyzeRequest{Text: "short contract"}, cfg); err != nil {
		t.Errorf("valid text rejected: %v", err)
	}
	if err := ValidateAnalyzeRequest(&AnalyzeRequest{Text: " \n\t"}, cfg); err == nil || err.Param != "text" {
		t.Errorf("blank text: got %v, want invalid_request on text", err)
	}
	if err := ValidateAnalyzeRequest(&AnalyzeRequest{Text: strings.Repeat("x", 17)}, cfg); err == nil {
		t.Error("oversized text accepted")
	}

	// Zero limit disables the size check.
	if err := ValidateAnalyzeRequest(&AnalyzeRequest{Text: strings.Repeat("x", 1000)}, ValidationConfig{}); err != nil {
		t.Errorf("unbounded config rejected text: %v", err)
	}
}
