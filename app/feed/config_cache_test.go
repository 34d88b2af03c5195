package feed

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestConfigCacheLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/feed.xml"
category: "tech"

settings:
  enabled: true
  max_articles: 2
  timeout: 15
  extract_content: true
`
	writeConfig(t, tempDir, "verge.yml", content)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 1 {
		t.Errorf("Expected 1 config, got %d", configCache.GetConfigCount())
	}

	feedConfig, err := configCache.GetConfig("verge")
	if err != nil {
		t.Fatal(err)
	}

	if feedConfig.Name != "verge" {
		t.Errorf("Expected name 'verge', got '%s'", feedConfig.Name)
	}
	if feedConfig.URL != "https://example.com/feed.xml" {
		t.Errorf("Unexpected URL: '%s'", feedConfig.URL)
	}
	if feedConfig.ParsedCategory() != CategoryTech {
		t.Errorf("Expected category tech, got '%s'", feedConfig.ParsedCategory())
	}
	if feedConfig.Settings.MaxArticles != 2 {
		t.Errorf("Expected max articles 2, got %d", feedConfig.Settings.MaxArticles)
	}
	if !feedConfig.Settings.ExtractContent {
		t.Error("Expected extract_content to be enabled")
	}
}

func TestConfigCacheDefaults(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, "minimal.yml", `
url: "https://example.com/feed.xml"
settings:
  enabled: true
`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	feedConfig, err := configCache.GetConfig("minimal")
	if err != nil {
		t.Fatal(err)
	}

	if feedConfig.Settings.MaxArticles != 4 {
		t.Errorf("Expected default max articles 4, got %d", feedConfig.Settings.MaxArticles)
	}
	if feedConfig.Settings.Timeout != 30 {
		t.Errorf("Expected default timeout 30, got %d", feedConfig.Settings.Timeout)
	}
	if feedConfig.ParsedCategory() != CategoryGeneral {
		t.Errorf("Expected fallback category general, got '%s'", feedConfig.ParsedCategory())
	}
}

func TestConfigCacheMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, "broken.yml", `
settings:
  enabled: true
`)

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err == nil {
		t.Error("Expected error for config without URL")
	}
}

func TestConfigCacheEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, "on.yml", "url: \"https://example.com/a.xml\"\nsettings:\n  enabled: true\n")
	writeConfig(t, tempDir, "off.yml", "url: \"https://example.com/b.xml\"\nsettings:\n  enabled: false\n")

	configCache := NewConfigCache(tempDir)
	if err := configCache.Run(); err != nil {
		t.Fatal(err)
	}

	if configCache.GetConfigCount() != 2 {
		t.Errorf("Expected 2 configs, got %d", configCache.GetConfigCount())
	}

	enabled := configCache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["on"]; !ok {
		t.Error("Expected 'on' to be the enabled config")
	}
}

func TestConfigCacheMissingDirectory(t *testing.T) {
	configCache := NewConfigCache("/nonexistent/feeds/dir")
	if err := configCache.Run(); err != nil {
		t.Errorf("Missing feeds directory should not be an error, got %v", err)
	}
	if configCache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", configCache.GetConfigCount())
	}
}
