// Command mtdump inspects SWIFT MT messages: headers, fields, sequences
// and structural validation.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mkadit/swiftmt"
	"github.com/mkadit/swiftmt/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	output     string
	mtType     string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mtdump",
	Short: "Inspect SWIFT MT messages",
	Long: `mtdump reads FIN messages and prints their headers, fields and sequences.

The message type is taken from block 2 unless --type is given. Extra
schemas can be registered from YAML or JSON files listed in the config.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if output != "" {
			cfg.Output = output
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = buildLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		swiftmt.SetLogger(logger)
		return registerSchemas(cfg.Schemas)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: text or json (default from config)")
	rootCmd.PersistentFlags().StringVarP(&mtType, "type", "t", "", "force the message type, e.g. 537")

	rootCmd.AddCommand(showCmd, seqCmd, validateCmd, typesCmd, schemaCmd, batchCmd)
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "mtdump", "config.yaml")
	}
	return "mtdump.yaml"
}

func buildLogger(lc config.LoggingConfig, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = lc.Encoding
	if lc.Encoding == "console" {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// registerSchemas loads extra schema files. A type that is already
// registered is skipped with a warning.
func registerSchemas(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
		var s *swiftmt.Schema
		if strings.EqualFold(filepath.Ext(path), ".json") {
			s, err = swiftmt.LoadSchemaJSON(data)
		} else {
			s, err = swiftmt.LoadSchemaYAML(data)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := swiftmt.Register(s); err != nil {
			if errors.Is(err, swiftmt.ErrDuplicateType) {
				logger.Warn("schema already registered", zap.String("path", path), zap.Stringer("schema", s))
				continue
			}
			return err
		}
		logger.Debug("registered schema", zap.String("path", path), zap.Stringer("schema", s))
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
