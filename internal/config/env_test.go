package config

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

// unsetEnv clears a variable for the duration of the test
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

// chdir switches the working directory for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

func TestApplyEnv_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv(EnvCDNBaseURL, "https://cdn.example.com/")
	t.Setenv(EnvMaxParallel, "6")
	t.Setenv(EnvLanguage, "pt")
	t.Setenv(EnvNoWorker, "1")

	settings := NewSettings(test.NewApp())
	if err := ApplyEnv(settings); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if settings.GetCDNBaseURL() != "https://cdn.example.com/" {
		t.Errorf("Expected base URL override, got %s", settings.GetCDNBaseURL())
	}
	if settings.GetMaxParallelFetches() != 6 {
		t.Errorf("Expected max parallel 6, got %d", settings.GetMaxParallelFetches())
	}
	if settings.GetLanguage() != "pt" {
		t.Errorf("Expected language pt, got %s", settings.GetLanguage())
	}
	if settings.GetUseWorker() {
		t.Error("Expected direct loading to be selected")
	}
}

func TestApplyEnv_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := EnvLanguage + "=ru\n" + EnvMaxParallel + "=99\n"
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	chdir(t, dir)
	unsetEnv(t, EnvCDNBaseURL)
	unsetEnv(t, EnvMaxParallel)
	unsetEnv(t, EnvLanguage)
	unsetEnv(t, EnvNoWorker)

	settings := NewSettings(test.NewApp())
	if err := ApplyEnv(settings); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected language from env file, got %s", settings.GetLanguage())
	}
	if settings.GetMaxParallelFetches() != MaxMaxParallel {
		t.Errorf("Expected clamped max parallel, got %d", settings.GetMaxParallelFetches())
	}
	if settings.GetCDNBaseURL() != "" {
		t.Errorf("Expected no base URL, got %s", settings.GetCDNBaseURL())
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "max parallel", key: EnvMaxParallel, value: "many"},
		{name: "language", key: EnvLanguage, value: "xx"},
		{name: "no worker", key: EnvNoWorker, value: "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			unsetEnv(t, EnvCDNBaseURL)
			unsetEnv(t, EnvMaxParallel)
			unsetEnv(t, EnvLanguage)
			unsetEnv(t, EnvNoWorker)
			t.Setenv(tt.key, tt.value)

			if err := ApplyEnv(NewSettings(test.NewApp())); err == nil {
				t.Errorf("Expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
