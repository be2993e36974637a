package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tidelight/aipane/pkg/config"
	"github.com/tidelight/aipane/pkg/logger"
	"github.com/tidelight/aipane/pkg/panel"
	"github.com/tidelight/aipane/pkg/transport"
)

// replayCmd runs the pipeline headless against a recorded event stream and
// prints the reassembled transcript. Useful for debugging recordings and for
// verifying that a stream reassembles deterministically.
var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a recorded event stream without the TUI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(cfgFile); err != nil {
			return err
		}
		if err := logger.Init(); err != nil {
			return err
		}
		defer logger.Close()

		p := panel.New(buildDeps())
		p.SwitchToConversation(1)

		replayer := transport.NewReplayer(0, p.Admit)
		if err := replayer.ReplayFile(context.Background(), args[0]); err != nil {
			return err
		}

		printTranscript(cmd, p)
		return nil
	},
}

func printTranscript(cmd *cobra.Command, p *panel.Panel) {
	for _, n := range p.Surface().Nodes() {
		switch n.Kind {
		case panel.NodeUser:
			fmt.Fprintf(cmd.OutOrStdout(), "you: %s\n\n", n.Raw)
		case panel.NodeAssistant:
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", n.Markup)
		case panel.NodeFunctionCall:
			fmt.Fprintf(cmd.OutOrStdout(), "* %s\n\n", n.Raw)
		case panel.NodeRevert:
			fmt.Fprintf(cmd.OutOrStdout(), "-- revert to here --\n\n")
		case panel.NodeWidget:
			if n.Widget != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", strings.Join(n.Widget.Render(80), "\n"))
			}
		}
	}
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
