package validation

import (
	"strings"
	"testing"
)

func TestNewAPIURLValidator(t *testing.T) {
	v := NewAPIURLValidator()
	if v == nil {
		t.Fatal("NewAPIURLValidator returned nil")
	}

	if !v.AllowLocalhost {
		t.Error("Expected AllowLocalhost to be true, the backend usually runs locally")
	}
	if !v.AllowPrivateIPs {
		t.Error("Expected AllowPrivateIPs to be true")
	}
	if v.MaxLength != 2048 {
		t.Errorf("Expected MaxLength to be 2048, got %d", v.MaxLength)
	}
}

func TestNewStrictAPIURLValidator(t *testing.T) {
	v := NewStrictAPIURLValidator()
	if v.AllowLocalhost || v.AllowPrivateIPs {
		t.Error("Expected strict validator to block localhost and private IPs")
	}
}

func TestValidateAndNormalize(t *testing.T) {
	v := NewAPIURLValidator()

	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
		errorMsg    string
	}{
		{
			name:        "empty URL",
			input:       "",
			shouldError: true,
			errorMsg:    "URL cannot be empty",
		},
		{
			name:        "whitespace-only URL",
			input:       "   ",
			shouldError: true,
			errorMsg:    "URL cannot be empty",
		},
		{
			name:     "default backend address",
			input:    "http://127.0.0.1:8000",
			expected: "http://127.0.0.1:8000",
		},
		{
			name:     "bare host and port gets HTTP",
			input:    "localhost:8000",
			expected: "http://localhost:8000",
		},
		{
			name:     "trailing slash trimmed",
			input:    "https://api.brief.dev/",
			expected: "https://api.brief.dev",
		},
		{
			name:     "path prefix kept",
			input:    "https://api.brief.dev/v1/",
			expected: "https://api.brief.dev/v1",
		},
		{
			name:     "private IP allowed",
			input:    "http://192.168.1.20:8000",
			expected: "http://192.168.1.20:8000",
		},
		{
			name:        "URL too long",
			input:       "https://api.brief.dev/" + strings.Repeat("a", 3000),
			shouldError: true,
			errorMsg:    "URL too long",
		},
		{
			name:        "invalid characters",
			input:       "https://api.brief.dev/<script>",
			shouldError: true,
			errorMsg:    "invalid characters",
		},
		{
			name:        "unsupported scheme",
			input:       "ftp://api.brief.dev",
			shouldError: true,
			errorMsg:    "http or https",
		},
		{
			name:        "no hostname",
			input:       "https:///v1",
			shouldError: true,
			errorMsg:    "valid hostname",
		},
		{
			name:        "directory traversal in path",
			input:       "https://api.brief.dev/../../etc",
			shouldError: true,
			errorMsg:    "directory traversal",
		},
		{
			name:        "query string rejected",
			input:       "https://api.brief.dev/?token=1",
			shouldError: true,
			errorMsg:    "query or fragment",
		},
		{
			name:        "unroutable host",
			input:       "http://0.0.0.0:8000",
			shouldError: true,
			errorMsg:    "unroutable host",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := v.ValidateAndNormalize(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error for input %q", tt.input)
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for input %q: %v", tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestValidateAndNormalizeStrict(t *testing.T) {
	v := NewStrictAPIURLValidator()

	tests := []struct {
		name     string
		input    string
		errorMsg string
	}{
		{"localhost", "http://localhost:8000", "localhost URLs are not permitted"},
		{"loopback IP", "http://127.0.0.1:8000", "localhost URLs are not permitted"},
		{"IPv6 loopback", "http://[::1]:8000", "localhost URLs are not permitted"},
		{"private IP", "http://10.0.0.5", "private IP addresses are not permitted"},
		{"link-local", "http://169.254.10.10", "private IP addresses are not permitted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateAndNormalize(tt.input)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.input)
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}

	if got, err := v.ValidateAndNormalize("https://api.brief.dev"); err != nil || got != "https://api.brief.dev" {
		t.Errorf("public host: got %q, %v", got, err)
	}
}

func TestSanitizeChannelID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{name: "plain id", input: "C012AB3CD", expected: "C012AB3CD"},
		{name: "surrounding whitespace trimmed", input: "  C1\n", expected: "C1"},
		{name: "empty means no channel", input: "", expected: ""},
		{name: "inner space", input: "C1 C2", shouldError: true},
		{name: "control character", input: "C1\x00", shouldError: true},
		{name: "too long", input: strings.Repeat("C", 200), shouldError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeChannelID(tt.input)
			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
