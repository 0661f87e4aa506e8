// cmd/reconcile/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wjleong/sheet-recon/pkg/config"
	"github.com/wjleong/sheet-recon/pkg/recon"
	"github.com/wjleong/sheet-recon/pkg/store"
)

func main() {
	var (
		filePath    = flag.String("file", "", "path to the uploaded .xlsx batch")
		sheet       = flag.String("sheet", "", "sheet to process (default: first sheet)")
		countryCode = flag.String("country", "", "phone country code prefix (default from config)")
	)
	flag.Parse()

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "usage: reconcile -file batch.xlsx [-sheet name] [-country 60]")
		os.Exit(2)
	}

	// .env is optional; variables set in the environment take effect either way.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := run(cfg, logger, *filePath, *sheet, *countryCode); err != nil {
		logger.Error("Run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, filePath, sheet, countryCode string) error {
	ctx := context.Background()

	upload, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	factory := store.NewFactory(cfg, logger)

	source, err := factory.CreateControlSource(ctx)
	if err != nil {
		return fmt.Errorf("failed to create control source: %w", err)
	}
	defer source.Close()

	sink, err := factory.CreateResultSink(ctx)
	if err != nil {
		return fmt.Errorf("failed to create result sink: %w", err)
	}
	defer sink.Close()

	engine, err := recon.NewEngine(source, sink, cfg.ControlTabs, logger)
	if err != nil {
		return err
	}

	if countryCode == "" {
		countryCode = cfg.CountryCode
	}
	result := engine.Run(ctx, upload, recon.Options{
		Sheet:       sheet,
		CountryCode: countryCode,
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(out))

	if result.Status != "OK" {
		return fmt.Errorf("reconciliation failed: %s", result.Message)
	}
	return nil
}

func newLogger(level, format string) (*zap.Logger, error) {
	var zcfg zap.Config
	if format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}

	switch level {
	case "debug":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	return zcfg.Build()
}
