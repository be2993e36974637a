package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tidelight/aipane/pkg/config"
	"github.com/tidelight/aipane/pkg/logger"
	"github.com/tidelight/aipane/pkg/panel"
	"github.com/tidelight/aipane/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "aipane",
	Short: "Streaming AI conversation panel",
	Long: `aipane reassembles an out-of-order AI event stream into an ordered
conversation display with interactive command and edit-file widgets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		if err := logger.Init(); err != nil {
			return err
		}
		defer logger.Close()

		app := tui.NewApp(buildDeps())
		app.Panel().SwitchToConversation(1)
		return app.Run(context.Background())
	},
}

// buildDeps assembles the pipeline collaborators for interactive use. The
// executor and canceller print to the log until a session backend is wired;
// markdown rendering degrades to plain text if glamour setup fails.
func buildDeps() panel.Deps {
	deps := panel.Deps{}
	if md, err := panel.NewGlamourRenderer(80); err == nil {
		deps.Markdown = md
	} else {
		logger.Warn("markdown renderer unavailable: %v", err)
	}
	return deps
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.aipane/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().String("replay", "", "JSONL event recording to replay into the panel")
	viper.BindPFlag("replay.path", rootCmd.PersistentFlags().Lookup("replay"))

	rootCmd.PersistentFlags().Duration("replay-delay", 0, "delay between replayed events")
	viper.BindPFlag("replay.delay", rootCmd.PersistentFlags().Lookup("replay-delay"))
}
