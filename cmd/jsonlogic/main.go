// Command jsonlogic evaluates a JsonLogic rule against a data document
// and prints the JSON result.
//
// Usage:
//
//	jsonlogic -rule rule.json [-data data.json]
//	echo '{"rule": {"var": "name"}, "data": {"name": "Alice"}}' | jsonlogic
//
// Rule and data files may be JSON or YAML (by extension). Configuration
// comes from the environment: LOG_LEVEL, EVAL_MAX_DEPTH.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/sandrolain/gologic/pkg/evaluator"
	"github.com/sandrolain/gologic/pkg/types"
)

// Version is set at build time.
var Version = "dev"

type request struct {
	Rule any `json:"rule"`
	Data any `json:"data"`
}

func main() {
	rulePath := flag.String("rule", "", "path to the rule file (JSON or YAML); reads a {\"rule\", \"data\"} object from stdin when omitted")
	dataPath := flag.String("data", "", "path to the data file (JSON or YAML)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	req, err := readRequest(*rulePath, *dataPath)
	if err != nil {
		logger.Fatal("failed to read input", zap.Error(err))
	}

	ev := evaluator.New(evaluator.WithMaxDepth(cfg.MaxDepth))
	result, err := ev.Apply(context.Background(), req.Rule, req.Data)
	if err != nil {
		var logicErr *types.Error
		if errors.As(err, &logicErr) {
			logger.Fatal("evaluation failed",
				zap.String("code", string(logicErr.Code)),
				zap.String("operation", logicErr.Operation),
				zap.Error(err))
		}
		logger.Fatal("evaluation failed", zap.Error(err))
	}

	encoder := json.NewEncoder(os.Stdout)
	if err := encoder.Encode(result); err != nil {
		logger.Fatal("failed to encode result", zap.Error(err))
	}
}

// initLogger builds a production zap logger at the configured level.
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch strings.ToLower(level) {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	return cfg.Build()
}

// readRequest loads the rule and data from files, or a single request
// object from stdin when no rule file is given.
func readRequest(rulePath, dataPath string) (*request, error) {
	if rulePath == "" {
		var req request
		if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
			return nil, fmt.Errorf("invalid request JSON on stdin: %w", err)
		}
		return &req, nil
	}

	rule, err := loadDocument(rulePath)
	if err != nil {
		return nil, fmt.Errorf("rule: %w", err)
	}
	req := &request{Rule: rule}

	if dataPath != "" {
		data, err := loadDocument(dataPath)
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		req.Data = data
	}
	return req, nil
}

// loadDocument reads a JSON or YAML file into the JSON value model.
func loadDocument(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
		}
	}
	return doc, nil
}
