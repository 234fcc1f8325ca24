package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment overrides
const (
	EnvCDNBaseURL  = "READER_CDN_BASE_URL"
	EnvMaxParallel = "READER_MAX_PARALLEL"
	EnvLanguage    = "READER_LANGUAGE"
	EnvNoWorker    = "READER_NO_WORKER"
)

// EnvFile is loaded from the working directory or its parent when present
const EnvFile = ".env.local"

// ApplyEnv loads .env.local if it exists and writes environment overrides
// into the settings. Variables already set in the process environment win
// over the file.
func ApplyEnv(s *Settings) error {
	loadEnvFile()

	if url := os.Getenv(EnvCDNBaseURL); url != "" {
		s.SetCDNBaseURL(url)
	}
	if value := os.Getenv(EnvMaxParallel); value != "" {
		count, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxParallel, value, err)
		}
		s.SetMaxParallelFetches(count)
	}
	if lang := os.Getenv(EnvLanguage); lang != "" {
		if _, known := s.GetLanguageOptions()[lang]; !known {
			return fmt.Errorf("invalid %s %q", EnvLanguage, lang)
		}
		s.SetLanguage(lang)
	}
	if value := os.Getenv(EnvNoWorker); value != "" {
		noWorker, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvNoWorker, value, err)
		}
		s.SetUseWorker(!noWorker)
	}
	return nil
}

func loadEnvFile() {
	if err := godotenv.Load(EnvFile); err == nil {
		log.Printf("Loaded %s", EnvFile)
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}
	_ = godotenv.Load(filepath.Join(parent, EnvFile))
}
