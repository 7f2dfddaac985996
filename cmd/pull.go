package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var pullPath string

// pullCmd merges remote translations into local files.
var pullCmd = &cobra.Command{
	Use:     "pull",
	Aliases: []string{"sync"},
	Short:   "Merge remote translations into local files",
	Long: `Pull downloads every remote language and merges it into the matching
local file. Local values survive only where the remote value is empty.
Languages without a local file are written next to the base language file.`,
	RunE: runPull,
}

func init() {
	pullCmd.Flags().StringVar(&pullPath, "path", "", "Translation directory (overrides sync.base_path)")
	RootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	summary, err := s.svc.Pull(ctx, pullPath)
	s.report(summary)
	return err
}
