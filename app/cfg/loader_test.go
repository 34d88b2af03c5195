package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestCfgFields(t *testing.T) {
	cfg := &Cfg{
		FeedsDir:       "./feeds",
		LedgerPath:     "./feedscribe.db",
		ReportsDir:     "./reports",
		RewriteModel:   "llama3-70b-8192",
		BlogID:         "123456",
		BlogURL:        "https://blog.example.com",
		WorkerCount:    3,
		MinWordCount:   15,
		RewriteDelay:   3,
		RewriteRetries: 2,
		Port:           "8080",
		UserAgent:      "Test Agent",
		Version:        "test-version",
	}

	if cfg.WorkerCount != 3 {
		t.Errorf("Expected worker count 3, got %d", cfg.WorkerCount)
	}
	if cfg.MinWordCount != 15 {
		t.Errorf("Expected min word count 15, got %d", cfg.MinWordCount)
	}
	if cfg.RewriteRetries != 2 {
		t.Errorf("Expected rewrite retries 2, got %d", cfg.RewriteRetries)
	}
	if cfg.BlogURL != "https://blog.example.com" {
		t.Errorf("Expected blog URL 'https://blog.example.com', got '%s'", cfg.BlogURL)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}

func TestGetPanicsWhenNotLoaded(t *testing.T) {
	globalCfg = nil
	defer func() {
		if r := recover(); r == nil {
			t.Error("Get should panic when configuration is not loaded")
		}
	}()
	Get()
}
