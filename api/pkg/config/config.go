package config

import (
	"errors"
	"os"

	"sudoku-api/internal/sudoku/engine"
)

type Config struct {
	JWTSecret   string
	Port        string
	PuzzlesFile string
	SolverMode  engine.Mode
}

// Load loads configuration from environment variables.
// Returns an error if JWT_SECRET is not set or equals "changeme".
func Load() (*Config, error) {
	jwtSecret := os.Getenv("JWT_SECRET")

	if jwtSecret == "" {
		return nil, errors.New("SECURITY ERROR: JWT_SECRET environment variable is required but not set")
	}

	if jwtSecret == "changeme" {
		return nil, errors.New("SECURITY ERROR: JWT_SECRET cannot be 'changeme' - please set a secure secret")
	}

	if len(jwtSecret) < 32 {
		return nil, errors.New("SECURITY ERROR: JWT_SECRET must be at least 32 characters long")
	}

	return &Config{
		JWTSecret:   jwtSecret,
		Port:        getEnv("PORT", "8080"),
		PuzzlesFile: getEnv("PUZZLES_FILE", "/data/puzzles.json"),
		SolverMode:  solverModeFromEnv("SOLVER_MODE"),
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// solverModeFromEnv picks which of the box-scoped engine's Box Scheduler
// variants the server's difficulty-analysis endpoint runs. Unrecognized or
// unset values fall back to engine.Sequential, same as the engine's own
// Mode zero value.
func solverModeFromEnv(key string) engine.Mode {
	switch os.Getenv(key) {
	case "independent_parallel":
		return engine.IndependentParallel
	case "coordinated_parallel":
		return engine.CoordinatedParallel
	default:
		return engine.Sequential
	}
}
