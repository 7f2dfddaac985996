package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"i18n-sync/feature/translations"

	"github.com/spf13/cobra"
)

var (
	pushPath          string
	pushDryRun        bool
	pushWriteBackfill bool
)

// pushCmd uploads local keys the remote is missing.
var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload local translation keys the remote is missing",
	Long: `Push completes every language with the base language's keys, then
uploads each key the remote does not have or holds an empty value for.
Remote values that are already populated are never overwritten.

Examples:
  # Preview what would be uploaded
  i18n-sync push --dry-run

  # Upload and write base-language placeholders into local files
  i18n-sync push --write-backfill`,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVar(&pushPath, "path", "", "Translation directory (overrides sync.base_path)")
	pushCmd.Flags().BoolVar(&pushDryRun, "dry-run", false, "Compute deltas without uploading")
	pushCmd.Flags().BoolVar(&pushWriteBackfill, "write-backfill", false, "Write base-language placeholders into local files")
	RootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	summary, err := s.svc.Push(ctx, translations.PushRequest{
		BasePath:      pushPath,
		DryRun:        pushDryRun,
		WriteBackfill: pushWriteBackfill,
	})
	s.report(summary)
	return err
}
