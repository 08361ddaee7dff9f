package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	WorkloadPath string
	LogLevel     string
	LogFormat    string
	MetricsPort  int
	MetricsPath  string
	Hold         bool
	ShowVersion  bool
	ShowHelp     bool
	Validate     bool

	flags *flag.FlagSet
}

func parseFlags(args []string) (*CLIConfig, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	cfg := &CLIConfig{flags: fs}

	// Define flags with environment variable fallback
	fs.StringVar(&cfg.WorkloadPath, "workload",
		getEnv("RINGQUEUE_WORKLOAD", "workloads/default.yaml"),
		"Path to workload file, .yaml or .json (env: RINGQUEUE_WORKLOAD)")

	fs.StringVar(&cfg.WorkloadPath, "w",
		getEnv("RINGQUEUE_WORKLOAD", "workloads/default.yaml"),
		"Path to workload file, .yaml or .json (env: RINGQUEUE_WORKLOAD)")

	fs.StringVar(&cfg.LogLevel, "log-level",
		getEnv("RINGQUEUE_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: RINGQUEUE_LOG_LEVEL)")

	fs.StringVar(&cfg.LogFormat, "log-format",
		getEnv("RINGQUEUE_LOG_FORMAT", "json"),
		"Log format: json, text (env: RINGQUEUE_LOG_FORMAT)")

	fs.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("RINGQUEUE_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: RINGQUEUE_METRICS_PORT)")

	fs.StringVar(&cfg.MetricsPath, "metrics-path",
		getEnv("RINGQUEUE_METRICS_PATH", "/metrics"),
		"Prometheus metrics path (env: RINGQUEUE_METRICS_PATH)")

	fs.BoolVar(&cfg.Hold, "hold",
		getEnvBool("RINGQUEUE_HOLD", false),
		"Keep serving metrics after the run until interrupted (env: RINGQUEUE_HOLD)")

	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	fs.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	fs.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	fs.BoolVar(&cfg.Validate, "validate", false, "Validate workload and exit")

	// Custom usage
	fs.Usage = func() {
		printDetailedHelp(fs)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if _, err := os.Stat(cfg.WorkloadPath); err != nil {
		return fmt.Errorf("workload file not found: %s", cfg.WorkloadPath)
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	if !slices.Contains([]string{"json", "text"}, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", cfg.MetricsPort)
	}

	if cfg.Hold && cfg.MetricsPort == 0 {
		return fmt.Errorf("-hold requires -metrics-port")
	}

	return nil
}

func printDetailedHelp(fs *flag.FlagSet) {
	_, _ = fmt.Fprintf(os.Stderr, `%s - RingQueue soak driver

Drives a RingQueue[int] through a workload of enqueue, dequeue and resize steps
and checks every result against a reference model.

Usage: %s [options]

Options:
`, appName, os.Args[0])
	fs.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Run a workload with text logs
  %s --workload=workloads/default.yaml --log-format=text

  # Expose Prometheus metrics and keep serving after the run
  %s --workload=workloads/churn.json --metrics-port=9090 --hold

  # Validate a workload only
  %s --workload=workloads/churn.json --validate

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
