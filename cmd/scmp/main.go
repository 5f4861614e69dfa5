//go:build linux

// Command scmp checks, dumps and enforces seccomp profiles.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "scmp",
	Short: "Build and apply seccomp filters from profiles",
	Long: `scmp compiles YAML or JSON seccomp profiles into BPF filters.
It can validate a profile, print the generated program, list the syscalls of
the native architecture, and run a command under a profile.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	defaultLevel := os.Getenv("SCMP_LOG_LEVEL")
	if defaultLevel == "" {
		defaultLevel = "info"
	}
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", defaultLevel, "Log level (debug, info, warn, error), env SCMP_LOG_LEVEL")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	switch logFormat {
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", logFormat)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
