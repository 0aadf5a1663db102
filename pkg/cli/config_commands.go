package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Osub/ckb/pkg/config"
)

func newInitCmd(app *App) *cobra.Command {
	var (
		dir    string
		format string
		miner  bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default node configuration template",
		Long: "Write default.json (or default.yaml) into a directory, ~/.ckb unless --dir is given.\n" +
			"With --miner the block producer template miner.json is written as well.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}
			if dir == "" {
				if dir, err = config.EnsureConfigDir(); err != nil {
					return err
				}
			}

			paths, err := config.WriteTemplate(dir, config.TemplateOptions{Format: f, Miner: miner, Force: force})
			if err != nil {
				return err
			}

			s := newStyles(cmd.OutOrStdout())
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.success.Render("Wrote"), p)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write the templates to (default ~/.ckb)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	cmd.Flags().BoolVar(&miner, "miner", false, "Also write the miner template")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	var minerPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a node configuration file",
		Long: "Load the config file, apply CKB_* environment and command line overrides and report\n" +
			"every problem found. Exits with status 1 when the configuration is invalid.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, errs := app.loadConfig(cmd)
			if minerPath != "" {
				errs = append(errs, validateMiner(minerPath)...)
			}
			if len(errs) > 0 {
				printProblems(cmd.ErrOrStderr(), path, errs)
				return ErrInvalidConfig
			}

			s := newStyles(cmd.OutOrStdout())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.success.Render("Config is valid:"), path)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s.muted.Render(fmt.Sprintf(
				"%d listen address(es), %d bootnode(s), %d reserved node(s), rpc on %s",
				len(cfg.Network.ListenAddresses), len(cfg.Network.Bootnodes),
				len(cfg.Network.ReservedNodes), cfg.RPC.ListenAddress)))
			if minerPath != "" && !cfg.RPC.HasModule(config.RPCModuleMiner) {
				w := cmd.ErrOrStderr()
				fmt.Fprintf(w, "%s rpc.modules does not enable %s; the block producer cannot fetch templates\n",
					newStyles(w).warning.Render("Warning:"), config.RPCModuleMiner)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&minerPath, "miner", "", "Also validate this miner config file")
	return cmd
}

func validateMiner(path string) []error {
	m, err := config.LoadMiner(path)
	if err != nil {
		return []error{err}
	}
	return m.Validate()
}

func newShowCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: "Print the configuration after defaults, the config file, CKB_* environment and command\n" +
			"line overrides have been applied. Problems are reported on stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, path, errs := app.loadConfig(cmd)
			if cfg == nil {
				printProblems(cmd.ErrOrStderr(), path, errs)
				return ErrInvalidConfig
			}

			if err := config.Encode(cmd.OutOrStdout(), f, cfg); err != nil {
				return err
			}
			if len(errs) > 0 {
				printProblems(cmd.ErrOrStderr(), path, errs)
				return ErrInvalidConfig
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	return cmd
}
