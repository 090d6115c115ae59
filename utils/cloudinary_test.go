package utils

import "testing"

func TestExtractPublicID(t *testing.T) {
	got, err := extractPublicID("https://res.cloudinary.com/demo/image/upload/v1234567890/camps/abc123.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "camps/abc123" {
		t.Errorf("publicID = %q, want camps/abc123", got)
	}
}

func TestExtractPublicIDRejectsBadURL(t *testing.T) {
	if _, err := extractPublicID("://not-a-url"); err == nil {
		t.Error("expected an error for an unparseable URL")
	}
	if _, err := extractPublicID("https://example.com/foo.jpg"); err == nil {
		t.Error("expected an error for a URL without an upload segment")
	}
}
