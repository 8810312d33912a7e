package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"go.uber.org/zap/zapcore"
)

// Default values for configuration
const (
	DefaultPort     = 3000
	DefaultDataFile = "leaderboard.json"
	DefaultLogFile  = "puckstop.log"
	DefaultLogLevel = "info"
)

// Environment variables that provide flag defaults
const (
	EnvPort           = "PORT"
	EnvDataFile       = "LEADERBOARD_FILE"
	EnvLeaderboardURL = "LEADERBOARD_URL"
	EnvLogFile        = "PUCKSTOP_LOG"
)

// Config holds the application configuration
type Config struct {
	Serve          bool   // Host the leaderboard service in-process
	Headless       bool   // Run only the leaderboard service
	Port           int    // Leaderboard service port
	DataFile       string // Leaderboard JSON file
	LeaderboardURL string // Leaderboard service the game talks to
	LayoutFile     string // Optional YAML game table, empty uses the embedded one
	LogFile        string
	LogLevel       string
	Lives          int // Overrides the table's start lives when > 0
	Muted          bool
}

// ParseArgs parses command line arguments and returns a Config.
// Defaults come from the environment, see LoadEnv.
func ParseArgs(args []string) (*Config, error) {
	fs := flag.NewFlagSet("puckstop", flag.ContinueOnError)

	envPort := DefaultPort
	if v := GetEnv(EnvPort, ""); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s must be a number, got %q", EnvPort, v)
		}
		envPort = p
	}

	serve := fs.Bool("serve", false, "host the leaderboard service")
	headless := fs.Bool("headless", false, "run only the leaderboard service (requires --serve)")
	port := fs.Int("port", envPort, "leaderboard service port (1-65535)")
	data := fs.String("data", GetEnv(EnvDataFile, DefaultDataFile), "leaderboard data file")
	url := fs.String("leaderboard", GetEnv(EnvLeaderboardURL, ""), "leaderboard service URL")
	layout := fs.String("layout", "", "YAML game table (layout and tuning)")
	logFile := fs.String("log", GetEnv(EnvLogFile, DefaultLogFile), "log file used while playing")
	logLevel := fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	lives := fs.Int("lives", 0, "starting lives (>=1, default from the game table)")
	mute := fs.Bool("mute", false, "start with sound muted")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validate: headless only makes sense when serving
	if *headless && !*serve {
		return nil, errors.New("--headless requires --serve")
	}

	// Validate port range
	if *port < 1 || *port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", *port)
	}

	if *data == "" {
		return nil, errors.New("data file must not be empty")
	}

	if _, err := zapcore.ParseLevel(*logLevel); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	// Validate lives, zero keeps the table value
	if *lives < 0 {
		return nil, fmt.Errorf("lives must be at least 1, got %d", *lives)
	}

	// Playing against our own service unless told otherwise
	if *url == "" {
		*url = fmt.Sprintf("http://localhost:%d", *port)
	}

	cfg := &Config{
		Serve:          *serve,
		Headless:       *headless,
		Port:           *port,
		DataFile:       *data,
		LeaderboardURL: *url,
		LayoutFile:     *layout,
		LogFile:        *logFile,
		LogLevel:       *logLevel,
		Lives:          *lives,
		Muted:          *mute,
	}

	return cfg, nil
}

// Addr is the listen address of the leaderboard service
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
