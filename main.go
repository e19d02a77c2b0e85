package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"modgrip/internal/api"
	"modgrip/internal/config"
	"modgrip/internal/domain"
	"modgrip/internal/eventbus"
	"modgrip/internal/search"
	"modgrip/internal/store"
	"modgrip/internal/ui"
)

var (
	// Global flags
	configPath string
	endpoint   string
	token      string
	logFile    string
	verbose    bool

	// Config subcommand flags
	saveConfig bool
)

var rootCmd = &cobra.Command{
	Use:   "modgrip",
	Short: "Browse and search a remote module catalog",
	Long: `modgrip is a terminal browser for a remote module catalog.

Type in the search field to filter the listing. Writing tag:<name> followed by
a space turns the tag into a chip; backspace on an empty field removes the
last chip. Searches run once typing pauses.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBrowser(cmd.Context())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after flag overrides are applied.
With --save the result is written back to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		bus := eventbus.New(logger)
		defer bus.Close()

		svc, cfg, err := loadConfig(bus, logger)
		if err != nil {
			return err
		}

		if saveConfig {
			if err := svc.Save(cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
		}

		out, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: <user config dir>/modgrip/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Catalog API endpoint, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API token, overrides the config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "modgrip.log", "Log file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	configCmd.Flags().BoolVar(&saveConfig, "save", false, "Write the effective configuration to the config file")

	rootCmd.AddCommand(configCmd)
}

func main() {
	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newLogger logs to a file so the TUI keeps the terminal
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{logFile}
	cfg.ErrorOutputPaths = []string{logFile}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(bus eventbus.EventBus, logger *zap.Logger) (config.ConfigService, *config.Config, error) {
	var svc config.ConfigService
	if configPath != "" {
		svc = config.NewConfigServiceAt(configPath, bus)
	} else {
		svc = config.NewConfigServiceWithBus(bus)
	}

	cfg, err := svc.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if endpoint != "" {
		cfg.API.Endpoint = endpoint
	}
	if token != "" {
		cfg.API.Token = token
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger.Info("config loaded",
		zap.String("endpoint", cfg.API.Endpoint),
		zap.Int("page_size", cfg.Search.DefaultPageSize),
		zap.String("filter", cfg.Search.DefaultFilter))
	return svc, cfg, nil
}

func runBrowser(ctx context.Context) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	bus := eventbus.New(logger)
	defer bus.Close()

	_, cfg, err := loadConfig(bus, logger)
	if err != nil {
		return err
	}

	timeout, err := cfg.API.TimeoutDuration()
	if err != nil {
		return err
	}
	client, err := api.NewClient(api.Options{
		Endpoint:          cfg.API.Endpoint,
		Token:             cfg.API.Token,
		Timeout:           timeout,
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	// Errors from here on are shown in the UI rather than aborting
	var startupErrs []eventbus.DomainEvent

	filter := cfg.Search.Filter()
	initial := domain.ModuleQuery{Filter: filter, PageSize: cfg.Search.DefaultPageSize}
	var cached []domain.Module
	if path := cfg.Cache.CachePath(); path != "" {
		cache, err := store.Open(path, logger)
		if err != nil {
			logger.Warn("cache disabled", zap.String("path", path), zap.Error(err))
			startupErrs = append(startupErrs, eventbus.ErrorEvent{Message: "Listing cache unavailable", Err: err})
		} else {
			unsubscribe := cache.Subscribe(bus)
			defer func() {
				unsubscribe()
				// Close waits for a save still running on the dispatcher
				bus.Close()
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close cache", zap.Error(err))
				}
			}()

			mods, ok, err := cache.LoadModules(initial.Key())
			switch {
			case err != nil:
				logger.Warn("failed to read cached listing", zap.Error(err))
			case ok:
				cached = mods
				logger.Debug("showing cached listing", zap.Int("modules", len(mods)))
			}
		}
	}

	ctrl := search.NewController(ctx, search.Options{
		Fetcher:   client,
		Debounce:  cfg.Search.Debounce(),
		PageSizes: cfg.Search.PageSizes,
		PageSize:  cfg.Search.DefaultPageSize,
		Filter:    filter,
		Modules:   cached,
		Publisher: bus,
		Logger:    logger,
	})
	defer ctrl.Close()

	model := ui.NewModel(ctx, ctrl, client, bus, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Set up event forwarding to UI
	forward := func(e eventbus.DomainEvent) {
		go p.Send(ui.EventMsg{Event: e})
	}
	defer bus.Subscribe(eventbus.EventError, forward)()
	defer bus.Subscribe(eventbus.EventConfigSaved, forward)()

	for _, e := range startupErrs {
		bus.Publish(e)
	}

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
