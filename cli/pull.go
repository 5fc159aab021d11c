package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull a range of blocks and process events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		startBlock, _ := cmd.Flags().GetUint64("start-block")
		endBlock, _ := cmd.Flags().GetUint64("end-block")
		if endBlock < startBlock {
			return fmt.Errorf("invalid block range: startBlock=%d, endBlock=%d", startBlock, endBlock)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close()
		engine, err := a.newEngine()
		if err != nil {
			return err
		}
		defer engine.Stop()
		return engine.ProcessRange(ctx, startBlock, endBlock)
	},
}

func init() {
	pullCmd.Flags().Uint64("start-block", 0, "Start block for processing")
	pullCmd.Flags().Uint64("end-block", 0, "End block for processing")
	rootCmd.AddCommand(pullCmd)
}
