package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Osub/ckb/pkg/node"
)

func newPeerIDCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "peer-id",
		Short: "Print the node's peer ID and dialable addresses",
		Long: "Prepare the data directory the config points at, generating network.secret_file when it\n" +
			"does not exist, and print the peer ID together with the addresses other nodes can put\n" +
			"in their bootnodes or reserved_nodes lists.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, errs := app.loadConfig(cmd)
			if len(errs) > 0 {
				printProblems(cmd.ErrOrStderr(), path, errs)
				return ErrInvalidConfig
			}

			n, err := node.Prepare(cfg, configDirOf(path), node.PrepareOptions{Stdout: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer n.Close()

			addrs, err := n.PeerAddrs()
			if err != nil {
				return err
			}

			s := newStyles(cmd.OutOrStdout())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", s.title.Render("Peer ID:"), n.Identity.PeerID)
			fmt.Fprintf(out, "%s %s\n", s.muted.Render("Secret file:"), n.Paths.SecretFile)
			for _, a := range addrs {
				fmt.Fprintf(out, "  %s\n", a)
			}
			return nil
		},
	}
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := app.Build
			if b.Version == "" {
				b.Version = "dev"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ckb %s", b.Version)
			if b.Commit != "" {
				fmt.Fprintf(out, " (commit %s)", b.Commit)
			}
			if b.Date != "" {
				fmt.Fprintf(out, " built %s", b.Date)
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

// configDirOf returns the directory relative paths in the config file resolve against.
func configDirOf(path string) string {
	return filepath.Dir(path)
}
