package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bazi-engine/internal/config"
	"bazi-engine/internal/service"
)

// version se fija al compilar con -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel string
}

// cli guarda lo que comparten los subcomandos; se llena en PersistentPreRunE.
var cli struct {
	cfg    *config.Config
	logger *zap.Logger
}

var rootCmd = &cobra.Command{
	Use:   "bazi",
	Short: "Four-pillar chart analysis: elements, interactions, pattern and strength",
	Long: `bazi analiza cartas de cuatro pilares ya calculadas por la capa de calendario
y reporta energía de los cinco elementos, combinaciones y choques, patrón (格局),
fuerza del maestro del día y elementos favorables.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if rootFlags.logLevel != "" {
			cfg.LogLevel = rootFlags.logLevel
		}
		logger, err := cfg.NewLogger()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		cli.cfg = cfg
		cli.logger = logger
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cli.logger != nil {
			_ = cli.logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error); default: $LOG_LEVEL")
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fixturesCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.Version = version
}

func newChartService() *service.ChartService {
	return service.NewChartService(cli.logger, nil)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
