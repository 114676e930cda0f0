package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/danielhkuo/bloc-alignment/cliparse"
	"github.com/danielhkuo/bloc-alignment/db"
	"github.com/danielhkuo/bloc-alignment/loader"
	"github.com/danielhkuo/bloc-alignment/middleware"
	"github.com/danielhkuo/bloc-alignment/models"
	"github.com/danielhkuo/bloc-alignment/pipeline"
	"github.com/danielhkuo/bloc-alignment/router"
)

// inputs is everything read before the pipeline runs
type inputs struct {
	rows   []models.RawVoteRow
	topics map[string]string
}

func main() {
	var err error

	// A missing .env file is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Group definitions
	analysis := cliparse.DefaultAnalysis()
	if cfg.GroupsFile != "" {
		if analysis, err = cliparse.LoadAnalysisFile(cfg.GroupsFile); err != nil {
			slog.Error("failed to load groups file", "path", cfg.GroupsFile, "error", err)
			os.Exit(1)
		}
	}
	settings, err := analysis.Settings(cfg)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	in, err := readInputs(ctx, cfg)
	if err != nil {
		slog.Error("failed to read input", "error", err)
		os.Exit(1)
	}

	res, err := pipeline.Run(in.rows, in.topics, settings)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	if cfg.Mode == cliparse.ModeReport {
		if err := writeReport(cfg.Output, res); err != nil {
			slog.Error("failed to write report", "error", err)
			os.Exit(1)
		}
		return
	}

	// Create router
	mux := router.NewRouter(res)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "run_id", res.RunID)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// readInputs loads votes and topics from the CSV files or the database.
// A topics CSV overrides the database's resolution_topic table.
func readInputs(ctx context.Context, cfg cliparse.Config) (*inputs, error) {
	in := &inputs{}

	if cfg.InputCSV != "" {
		f, err := os.Open(cfg.InputCSV)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if in.rows, err = loader.ReadCSV(f); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.InputCSV, err)
		}
	} else {
		rows, topics, err := readDatabase(ctx, cfg, cfg.TopicsCSV == "")
		if err != nil {
			return nil, err
		}
		in.rows, in.topics = rows, topics
	}

	if cfg.TopicsCSV != "" {
		f, err := os.Open(cfg.TopicsCSV)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if in.topics, err = loader.ReadTopics(f); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.TopicsCSV, err)
		}
	}

	return in, nil
}

// readDatabase reads the vote table and, when withTopics is set, the topic
// table. The connection is closed before returning.
func readDatabase(ctx context.Context, cfg cliparse.Config, withTopics bool) ([]models.RawVoteRow, map[string]string, error) {
	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	defer conn.Close()
	slog.Debug("database connected", "dialect", dialect)

	rows, err := db.LoadRawRows(ctx, conn)
	if err != nil {
		return nil, nil, err
	}
	if !withTopics {
		return rows, nil, nil
	}
	topics, err := db.LoadTopics(ctx, conn)
	if err != nil {
		return nil, nil, err
	}
	return rows, topics, nil
}

// writeReport writes the result as JSON to path, or to stdout when path is
// empty. Terminal output is indented.
func writeReport(path string, res *pipeline.Result) error {
	var w io.Writer = os.Stdout
	indent := isatty.IsTerminal(os.Stdout.Fd())

	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
		indent = false
	}

	return encodeReport(w, res, indent)
}

func encodeReport(w io.Writer, res *pipeline.Result, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(res)
}
