package logging

import (
	"testing"

	"github.com/inkwell-blog/inkwell/pkg/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"json info", "INFO", "json"},
		{"text debug", "DEBUG", "text"},
		{"unknown level falls back", "NOPE", "json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(&config.LoggingConfig{Level: tt.level, Format: tt.format})
			if err != nil {
				t.Fatalf("InitLogger() error: %v", err)
			}
			if Logger == nil {
				t.Fatal("Logger not initialized")
			}
		})
	}
}

func TestGetLoggerFallback(t *testing.T) {
	Logger = nil
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
}

func TestWithComponent(t *testing.T) {
	if WithComponent("api") == nil {
		t.Fatal("WithComponent() returned nil")
	}
}
