// Package main implements ringqueue-soak, a driver that runs RingQueue
// workloads against a reference model and reports any FIFO, size or
// truncation law the queue breaks.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/c360/ringqueue/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "ringqueue-soak"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(os.Args[1:]); err != nil {
		slog.Error("Soak run failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run(args []string) error {
	cliCfg, logger, shouldExit, err := initializeCLI(args)
	if shouldExit || err != nil {
		return err
	}

	workload, err := loadWorkload(cliCfg.WorkloadPath)
	if err != nil {
		return fmt.Errorf("load workload: %w", err)
	}

	if cliCfg.Validate {
		logger.Info("Workload is valid", "name", workload.Name, "steps", len(workload.Steps))
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := metric.NewMetricsRegistry()
	if cliCfg.MetricsPort > 0 {
		server := metric.NewServer(cliCfg.MetricsPort, cliCfg.MetricsPath, registry)
		if err := server.Start(); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer func() {
			if err := server.Stop(); err != nil {
				logger.Warn("Metrics server stop failed", "error", err)
			}
		}()
		logger.Info("Serving metrics", "address", server.Address())
	}

	report, err := NewRunner(workload, logger, registry).Run(ctx)
	if report != nil {
		logReport(logger, report)
	}
	if err != nil {
		return err
	}

	if cliCfg.Hold {
		logger.Info("Holding for metrics scrapes, interrupt to exit")
		<-ctx.Done()
	}

	if !report.Passed() {
		return fmt.Errorf("workload %s: %d queue law violations", workload.Name, report.ViolationCount)
	}
	return nil
}

// initializeCLI parses flags and sets up logging
func initializeCLI(args []string) (*CLIConfig, *slog.Logger, bool, error) {
	cliCfg, err := parseFlags(args)
	if err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}
	if err := validateFlags(cliCfg); err != nil {
		return nil, nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp(cliCfg.flags)
		return nil, nil, true, nil
	}

	logger := setupLogger(os.Stdout, cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting ringqueue soak driver",
		"version", Version,
		"build_time", BuildTime,
		"workload_path", cliCfg.WorkloadPath)

	return cliCfg, logger, false, nil
}

func logReport(logger *slog.Logger, report *Report) {
	attrs := []any{
		"run_id", report.RunID,
		"workload", report.Workload,
		"passed", report.Passed(),
		"rounds", report.CompletedRounds,
		"steps", report.Steps,
		"enqueued", report.Enqueued,
		"dequeued", report.Dequeued,
		"truncated", report.Truncated,
		"violations", report.ViolationCount,
		"final_size", report.FinalSize,
		"final_capacity", report.FinalCapacity,
		"grows", report.Stats.Grows,
		"max_size", report.Stats.MaxSize,
		"duration", report.Duration,
	}

	if report.Passed() {
		logger.Info("Soak run report", attrs...)
		return
	}
	logger.Error("Soak run report", attrs...)
	for _, v := range report.Violations {
		logger.Error("Violation", "round", v.Round, "step", v.Step, "law", v.Law, "detail", v.Detail)
	}
}
