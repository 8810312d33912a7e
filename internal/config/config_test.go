package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv isolates a test from the developer's environment
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvPort, EnvDataFile, EnvLeaderboardURL, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Serve || cfg.Headless {
		t.Error("expected play mode without the service")
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.DataFile != DefaultDataFile {
		t.Errorf("expected data file %q, got %q", DefaultDataFile, cfg.DataFile)
	}
	if cfg.LogFile != DefaultLogFile {
		t.Errorf("expected log file %q, got %q", DefaultLogFile, cfg.LogFile)
	}
	if cfg.LeaderboardURL != "http://localhost:3000" {
		t.Errorf("expected local leaderboard URL, got %q", cfg.LeaderboardURL)
	}
	if cfg.Lives != 0 || cfg.Muted {
		t.Errorf("expected no overrides, got lives=%d muted=%v", cfg.Lives, cfg.Muted)
	}
}

func TestParseArgs_ServeMode(t *testing.T) {
	clearEnv(t)

	cfg, err := ParseArgs([]string{"--serve", "--port", "8080"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Serve {
		t.Error("expected Serve to be true")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Addr())
	}
	if cfg.LeaderboardURL != "http://localhost:8080" {
		t.Errorf("expected leaderboard URL to follow the port, got %q", cfg.LeaderboardURL)
	}
}

func TestParseArgs_CustomOptions(t *testing.T) {
	clearEnv(t)

	args := []string{
		"--serve", "--headless",
		"--data", "/tmp/board.json",
		"--leaderboard", "http://scores.example:9000",
		"--layout", "rink.yaml",
		"--log", "/tmp/p.log",
		"--log-level", "debug",
		"--lives", "3",
		"--mute",
	}
	cfg, err := ParseArgs(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Serve || !cfg.Headless {
		t.Error("expected headless service")
	}
	if cfg.DataFile != "/tmp/board.json" {
		t.Errorf("expected data file '/tmp/board.json', got '%s'", cfg.DataFile)
	}
	if cfg.LeaderboardURL != "http://scores.example:9000" {
		t.Errorf("unexpected leaderboard URL '%s'", cfg.LeaderboardURL)
	}
	if cfg.LayoutFile != "rink.yaml" {
		t.Errorf("expected layout 'rink.yaml', got '%s'", cfg.LayoutFile)
	}
	if cfg.LogFile != "/tmp/p.log" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected log settings %q %q", cfg.LogFile, cfg.LogLevel)
	}
	if cfg.Lives != 3 {
		t.Errorf("expected lives 3, got %d", cfg.Lives)
	}
	if !cfg.Muted {
		t.Error("expected muted")
	}
}

func TestParseArgs_EnvironmentDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "4000")
	t.Setenv(EnvDataFile, "env.json")
	t.Setenv(EnvLogFile, "env.log")

	cfg, err := ParseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("expected port 4000 from env, got %d", cfg.Port)
	}
	if cfg.DataFile != "env.json" {
		t.Errorf("expected data file from env, got %q", cfg.DataFile)
	}
	if cfg.LogFile != "env.log" {
		t.Errorf("expected log file from env, got %q", cfg.LogFile)
	}

	// flags win over the environment
	cfg, err = ParseArgs([]string{"--port", "5000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected flag port 5000, got %d", cfg.Port)
	}
}

func TestParseArgs_InvalidEnvPort(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "abc")

	if _, err := ParseArgs(nil); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"headless without serve", []string{"--headless"}},
		{"port too low", []string{"--port", "0"}},
		{"port too high", []string{"--port", "65536"}},
		{"negative lives", []string{"--lives", "-1"}},
		{"bad log level", []string{"--log-level", "loud"}},
		{"empty data file", []string{"--data", ""}},
		{"unknown flag", []string{"--points", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if _, err := ParseArgs(tt.args); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestParseArgs_ValidPortBoundaries(t *testing.T) {
	tests := []struct {
		name string
		port string
		want int
	}{
		{"minimum port", "1", 1},
		{"maximum port", "65535", 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := ParseArgs([]string{"--serve", "--port", tt.port})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Port != tt.want {
				t.Errorf("expected port %d, got %d", tt.want, cfg.Port)
			}
		})
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("LEADERBOARD_FILE=from-dotenv.json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv.Load does not override, so drop the empty value clearEnv set
	os.Unsetenv(EnvDataFile)

	if err := LoadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := GetEnv(EnvDataFile, ""); got != "from-dotenv.json" {
		t.Errorf("expected value from .env, got %q", got)
	}
}

func TestLoadEnv_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := LoadEnv(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if strings.Contains(err.Error(), "no such file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestDefaultConstants(t *testing.T) {
	if DefaultPort != 3000 {
		t.Errorf("expected DefaultPort 3000, got %d", DefaultPort)
	}
	if DefaultLogLevel != "info" {
		t.Errorf("expected DefaultLogLevel info, got %s", DefaultLogLevel)
	}
}
