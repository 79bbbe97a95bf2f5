package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nipunchauhan/vendorsum/internal/config"
	"github.com/nipunchauhan/vendorsum/internal/logging"
	"github.com/nipunchauhan/vendorsum/pkg/vendorsum"
)

// loadProjectConfig loads .env and the project configuration.
// Without --config a missing ./vendorsum.yaml is not an error and yields nil.
func loadProjectConfig(configPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if configPath != "" {
		projectCfg, err := config.LoadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", vendorsum.ErrInvalidConfig, err)
		}
		return projectCfg, nil
	}

	projectCfg, err := config.Load(".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to load %s: %w", vendorsum.ErrInvalidConfig, config.ConfigFileName, err)
	}
	return projectCfg, nil
}

// resolveEffectiveTimeout returns the effective timeout, preferring
// vendorsum.yaml if the flag wasn't set.
func resolveEffectiveTimeout(cmd *cobra.Command, projectCfg *config.ProjectConfig, flagTimeout time.Duration) (time.Duration, error) {
	if projectCfg != nil && !cmd.Flags().Changed("timeout") {
		d, err := projectCfg.TimeoutDuration()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", vendorsum.ErrInvalidConfig, err)
		}
		if d > 0 {
			return d, nil
		}
	}
	if flagTimeout < 0 {
		return 0, fmt.Errorf("%w: --timeout cannot be negative", vendorsum.ErrInvalidConfig)
	}
	return flagTimeout, nil
}

// pathsConfig returns the paths section of projectCfg, or the zero value.
func pathsConfig(projectCfg *config.ProjectConfig) config.PathsConfig {
	if projectCfg == nil {
		return config.PathsConfig{}
	}
	return projectCfg.Paths
}

// openRunLogger opens the append-mode log file of one command run and tags
// every line with a fresh run_id. The returned close function must be called.
func openRunLogger(cmd *cobra.Command, projectCfg *config.ProjectConfig, fileName string) (vendorsum.Logger, func(), error) {
	logDir := firstNonEmpty(globalFlags.logDir, pathsConfig(projectCfg).LogDir, vendorsum.DefaultLogDir)

	base, err := logging.NewFileLogger(logging.Options{
		Path:    filepath.Join(logDir, fileName),
		Verbose: globalFlags.verbose,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := base.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}
	return base.With("run_id", uuid.NewString()), closeFn, nil
}

// runTimed runs fn under a context cancelled by Ctrl-C or SIGTERM and logs
// the total execution time whether or not fn succeeds.
func runTimed(cmd *cobra.Command, logger vendorsum.Logger, label string, fn func(ctx context.Context) error) error {
	start := time.Now()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := fn(ctx)
	logger.Info("%s", timingMessage(label, time.Since(start)))
	return err
}

func timingMessage(label string, elapsed time.Duration) string {
	return fmt.Sprintf("%s finished. Total execution time: %.2f minutes.", label, elapsed.Minutes())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
