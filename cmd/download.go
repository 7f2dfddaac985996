package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var downloadPath string

// downloadCmd writes remote translations to a preview directory.
var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download remote translations into a preview directory",
	Long: `Download writes every remote language to <lang>.json in the target
directory, which is cleared first. Local translation files are not touched.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVar(&downloadPath, "path", "", "Target directory (default <work_dir>/preview)")
	RootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	summary, err := s.svc.Download(ctx, downloadPath)
	s.report(summary)
	return err
}
