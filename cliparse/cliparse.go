package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

const (
	ModeReport = "report"
	ModeServe  = "serve"
)

const defaultPort = 3318

var (
	ErrNoInput       = errors.New("input required (use -i, -d, INPUT_CSV or DATABASE_URL)")
	ErrTwoInputs     = errors.New("use either a CSV file or a database, not both")
	ErrInvalidMode   = errors.New("mode must be report or serve")
	ErrInvalidDBType = errors.New("database type must be sqlite or postgres")
)

type Config struct {
	Mode string

	// Input: exactly one of InputCSV and DatabaseURL
	InputCSV     string
	DatabaseURL  string
	DatabaseType string
	TopicsCSV    string
	GroupsFile   string

	StartYear    int
	EndYear      int
	MinAgreement int
	TieBreak     string
	Duplicates   string
	Unknown      string

	Output  string
	Port    int
	Verbose bool
}

// ParseFlags reads flags with environment fallbacks and checks that an
// input source is configured
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("bloc-alignment", flag.ContinueOnError)

	fs.StringVar(&cfg.Mode, "mode", ModeReport, "report (write JSON and exit) or serve (HTTP)")

	// Input (can be CLI args or env)
	fs.StringVar(&cfg.InputCSV, "i", "", "Input votes CSV")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.TopicsCSV, "topics", "", "Resolution topic CSV (optional)")
	fs.StringVar(&cfg.GroupsFile, "groups", "", "Group definitions YAML (optional)")

	// Analysis
	fs.IntVar(&cfg.StartYear, "start", 0, "First year, inclusive (0 = open)")
	fs.IntVar(&cfg.EndYear, "end", 0, "Last year, inclusive (0 = open)")
	fs.IntVar(&cfg.MinAgreement, "min-agreement", 2, "Members that must share a vote")
	fs.StringVar(&cfg.TieBreak, "tie-break", "none", "Mode tie handling: none or priority")
	fs.StringVar(&cfg.Duplicates, "duplicates", "first", "Duplicate rows: first, last or reject")
	fs.StringVar(&cfg.Unknown, "unknown", "pass", "Unknown countries: pass or drop")

	// Output
	fs.StringVar(&cfg.Output, "o", "", "Report output file (default stdout)")
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.BoolVar(&cfg.Verbose, "v", false, "Debug logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Mode != ModeReport && cfg.Mode != ModeServe {
		return Config{}, fmt.Errorf("%w: got %q", ErrInvalidMode, cfg.Mode)
	}

	// Fall back to environment variables
	var err error
	if cfg.Port, err = intFromEnv(cfg.Port, "PORT"); err != nil {
		return Config{}, err
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.StartYear, err = intFromEnv(cfg.StartYear, "START_YEAR"); err != nil {
		return Config{}, err
	}
	if cfg.EndYear, err = intFromEnv(cfg.EndYear, "END_YEAR"); err != nil {
		return Config{}, err
	}

	cfg.InputCSV = stringFromEnv(cfg.InputCSV, "INPUT_CSV")
	cfg.DatabaseURL = stringFromEnv(cfg.DatabaseURL, "DATABASE_URL")
	cfg.TopicsCSV = stringFromEnv(cfg.TopicsCSV, "TOPICS_CSV")
	cfg.GroupsFile = stringFromEnv(cfg.GroupsFile, "GROUPS_FILE")

	switch {
	case cfg.InputCSV == "" && cfg.DatabaseURL == "":
		return Config{}, ErrNoInput
	case cfg.InputCSV != "" && cfg.DatabaseURL != "":
		return Config{}, ErrTwoInputs
	}

	if cfg.DatabaseURL != "" {
		cfg.DatabaseType = stringFromEnv(cfg.DatabaseType, "DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
		if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
			return Config{}, fmt.Errorf("%w: got %q", ErrInvalidDBType, cfg.DatabaseType)
		}
	}

	return cfg, nil
}

func stringFromEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}

func intFromEnv(value int, key string) (int, error) {
	if value != 0 {
		return value, nil
	}
	s := os.Getenv(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	return n, nil
}
