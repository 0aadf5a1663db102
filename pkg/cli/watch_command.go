package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Osub/ckb/pkg/config"
	"github.com/Osub/ckb/pkg/logging"
)

func newWatchCmd(app *App) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Revalidate the config file on every change",
		Long:  "Validate the config file now and again after every edit until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := app.resolveConfigPath()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Filter: "info",
				Color:  !noColor,
				Stdout: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer logger.Close()

			load := func(p string) (*config.Config, []error) { return app.loadConfigAt(cmd, p) }
			report := func(_ *config.Config, errs []error) {
				if len(errs) > 0 {
					printProblems(cmd.OutOrStdout(), path, errs)
					return
				}
				s := newStyles(cmd.OutOrStdout())
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.success.Render("Config is valid:"), path)
			}

			report(load(path))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return config.Watch(ctx, path, load, logger, report)
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
	return cmd
}
