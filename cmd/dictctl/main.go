// Command dictctl runs operator tasks against the dictionary database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/amchigale/konkani-dictionary/internal/config"
	pkglogger "github.com/amchigale/konkani-dictionary/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "dictctl",
		Short:         "Operator tool for the Konkani dictionary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", defaultConfigPath(), "config file path")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log SQL statements")

	rootCommand.AddCommand(
		newMigrateCommand(),
		newExpertCommand(),
		newExportCommand(),
		newReindexCommand(),
	)
	return rootCommand
}

func defaultConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	config.LoadDotEnv(".")
	pkglogger.InitWithWriter("local", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
