package apikey

import (
	"strings"
	"testing"
)

func TestGenerateAndParse(t *testing.T) {
	token, prefix, secretHash, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if !strings.HasPrefix(token, "fb_") {
		t.Errorf("token %q missing fb_ scheme", token)
	}
	if strings.Count(token, "_") != 2 {
		t.Errorf("token %q should have exactly two separators", token)
	}

	parsedPrefix, secret, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsedPrefix != prefix {
		t.Errorf("parsed prefix = %q, want %q", parsedPrefix, prefix)
	}
	if !Verify(secret, secretHash) {
		t.Error("secret should verify against its own hash")
	}
	if Verify("wrong-secret", secretHash) {
		t.Error("wrong secret should not verify")
	}
}

func TestParseRejectsMalformedTokens(t *testing.T) {
	tests := []string{
		"",
		"fb_onlyprefix",
		"xx_prefix_secret",
		"fb__secret",
		"fb_prefix_",
		"fb_a_b_c",
	}
	for _, token := range tests {
		if _, _, err := Parse(token); err == nil {
			t.Errorf("Parse(%q) should fail", token)
		}
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		granted  []string
		required string
		want     bool
	}{
		{"exact match", []string{PermInvoicesRead}, PermInvoicesRead, true},
		{"missing", []string{PermInvoicesRead}, PermInvoicesWrite, false},
		{"wildcard covers everything", []string{PermWildcard}, PermTimeWrite, true},
		{"one of several", []string{PermTimeRead, PermTimeWrite}, PermTimeWrite, true},
		{"empty grants", nil, PermInvoicesRead, false},
		{"read does not imply write", []string{PermTimeRead}, PermTimeWrite, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.granted, tt.required); got != tt.want {
				t.Errorf("HasPermission(%v, %q) = %v, want %v", tt.granted, tt.required, got, tt.want)
			}
		})
	}
}
