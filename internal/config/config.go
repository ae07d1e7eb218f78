package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable; required variables are enforced by must()
// and missing values cause the program to exit with a fatal log message.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	// Solver knobs. All optional; zero values fall back to the solver
	// package defaults.
	SolverMaxSteps  int     // SOLVER_MAX_STEPS search-effort cap
	RowTolerance    float64 // SOLVER_ROW_TOLERANCE y-distance bucketing rows
	MaxSeatGap      float64 // SOLVER_MAX_SEAT_GAP x-distance breaking a row
	FrontBackLinks  bool    // SOLVER_FRONT_BACK enables vertical adjacency
	ColumnTolerance float64 // SOLVER_COL_TOLERANCE x-tolerance for vertical links
}

// Load reads configuration values from environment variables.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		SolverMaxSteps:  envInt("SOLVER_MAX_STEPS", 0),
		RowTolerance:    envFloat("SOLVER_ROW_TOLERANCE", 0),
		MaxSeatGap:      envFloat("SOLVER_MAX_SEAT_GAP", 0),
		FrontBackLinks:  envBool("SOLVER_FRONT_BACK", false),
		ColumnTolerance: envFloat("SOLVER_COL_TOLERANCE", 0),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs fatally and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func envFloat(k string, d float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return d
}
