// Package main implements the taskpad CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"taskpad/internal/assistant"
	"taskpad/internal/config"
	"taskpad/internal/export"
	"taskpad/internal/logging"
	"taskpad/internal/notify"
	"taskpad/internal/scheduler"
	"taskpad/internal/storage"
	"taskpad/internal/ui"
)

var (
	configPath string
	debugLog   bool
)

var rootCmd = &cobra.Command{
	Use:           "taskpad",
	Short:         "A small terminal task tracker with due-date reminders",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $TASKPAD_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "log at debug level")
	rootCmd.AddCommand(exportCmd, askCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app is everything a command needs, built once from the config file.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	closeFn func() error
}

func loadApp() (*app, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := slog.LevelInfo
	if debugLog {
		level = slog.LevelDebug
	}
	logger, closeFn, err := logging.New(cfg.LogFile, level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	logger.Info("config loaded", "path", path)
	return &app{cfg: cfg, logger: logger, closeFn: closeFn}, nil
}

func (a *app) Close() {
	if err := a.closeFn(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: close log: %v\n", err)
	}
}

func (a *app) exportOptions() export.Options {
	return export.Options{DateLayout: a.cfg.DateLayout, Location: time.Local}
}

func (a *app) asker() *assistant.Asker {
	timeout, err := a.cfg.Assistant.TimeoutDuration()
	if err != nil {
		a.logger.Warn("invalid assistant timeout, using default", "err", err)
	}
	client := assistant.NewClient(
		a.cfg.Assistant.APIKey(),
		assistant.WithEndpoint(a.cfg.Assistant.Endpoint),
		assistant.WithAPIVersion(a.cfg.Assistant.APIVersion),
		assistant.WithModel(a.cfg.Assistant.Model),
	)
	return assistant.NewAsker(client, timeout, a.logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	interval, err := a.cfg.Interval()
	if err != nil {
		a.logger.Warn("invalid tick interval, using default", "err", err)
	}
	sched := scheduler.New(
		notify.New(a.cfg.Notifications, a.logger),
		interval,
		scheduler.WithLogger(a.logger),
	)

	m := ui.New(storage.Seed(), a.cfg, ui.Deps{
		Scheduler: sched,
		Asker:     a.asker(),
		Sink:      export.DirSink{Dir: a.cfg.ExportDir},
		Export:    a.exportOptions(),
		Logger:    a.logger,
	})
	if err := ui.Run(m); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
