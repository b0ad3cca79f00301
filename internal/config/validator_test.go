package config

import (
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string // empty means valid
	}{
		// Storage
		{"custom key", func(c *Config) { c.Storage.Key = "work-2024" }, ""},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, "storage.key"},
		{"key with slash", func(c *Config) { c.Storage.Key = "a/b" }, "storage.key"},
		{"hidden key", func(c *Config) { c.Storage.Key = ".tasks" }, "storage.key"},
		{"custom dir", func(c *Config) { c.Storage.Dir = "~/tasks" }, ""},
		{"dir with null", func(c *Config) { c.Storage.Dir = "a\x00b" }, "storage.dir"},
		{"dir too long", func(c *Config) { c.Storage.Dir = strings.Repeat("a", 4097) }, "storage.dir"},

		// TUI
		{"min width", func(c *Config) { c.TUI.MaxTextWidth = MinTextWidth }, ""},
		{"max width", func(c *Config) { c.TUI.MaxTextWidth = MaxTextWidth }, ""},
		{"width too small", func(c *Config) { c.TUI.MaxTextWidth = MinTextWidth - 1 }, "tui.max_text_width"},
		{"width too large", func(c *Config) { c.TUI.MaxTextWidth = MaxTextWidth + 1 }, "tui.max_text_width"},

		// Output
		{"json output", func(c *Config) { c.Output.Format = "json" }, ""},
		{"yaml output", func(c *Config) { c.Output.Format = "yaml" }, ""},
		{"unknown output", func(c *Config) { c.Output.Format = "xml" }, "output.format"},
		{"empty output", func(c *Config) { c.Output.Format = "" }, "output.format"},

		// Logging
		{"debug level", func(c *Config) { c.Logging.Level = "debug" }, ""},
		{"uppercase level", func(c *Config) { c.Logging.Level = "WARN" }, ""},
		{"unknown level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"zero size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge size", func(c *Config) { c.Logging.MaxSizeMB = 1001 }, "logging.max_size_mb"},
		{"zero backups", func(c *Config) { c.Logging.MaxBackups = 0 }, ""},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("expected valid config, got %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("expected 1 error for %s, got %v", tt.wantField, errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Storage.Key = ""
	cfg.TUI.MaxTextWidth = 0
	cfg.Output.Format = "xml"
	cfg.Logging.MaxBackups = -1

	if errs := cfg.Validate(); len(errs) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(errs), errs)
	}
}

func TestSettableKeys(t *testing.T) {
	for _, key := range SettableKeys() {
		if !IsSettableKey(key) {
			t.Errorf("IsSettableKey(%q) = false", key)
		}
	}
	for _, key := range []string{"", "storage", "tui.theme", "unknown.key"} {
		if IsSettableKey(key) {
			t.Errorf("IsSettableKey(%q) = true", key)
		}
	}
}
