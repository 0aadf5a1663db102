// Package cli implements the ckb command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Osub/ckb/pkg/config"
)

// ErrInvalidConfig is returned after the problems of a config file have been printed.
var ErrInvalidConfig = errors.New("invalid configuration")

// BuildInfo is the version metadata populated via -ldflags at build time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// App carries the state shared by all commands.
type App struct {
	Build BuildInfo
	// Env looks up CKB_* overrides; nil reads the process environment.
	Env config.LookupFunc

	configPath string
	overrides  flagOverrides
}

// flagOverrides are the command line overrides, applied after the environment.
type flagOverrides struct {
	dataDir         string
	chainSpec       string
	logFilter       string
	rpcListen       string
	listenAddresses []string
	bootnodes       []string
}

// NewRootCmd builds the ckb command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "ckb",
		Short: "Create, validate and inspect ckb node configuration",
		Long: "ckb manages the configuration document a ckb node reads at start-up: it writes the\n" +
			"default template, validates edited copies and shows the effective settings after\n" +
			"CKB_* environment and command line overrides.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "Path to the node config file (default ~/.ckb/default.json, .yaml or .yml)")
	flags.StringVar(&app.overrides.dataDir, "data-dir", "", "Override data_dir")
	flags.StringVar(&app.overrides.chainSpec, "chain-spec", "", "Override chain.spec")
	flags.StringVar(&app.overrides.logFilter, "log-filter", "", "Override logger.filter, e.g. info,chain=debug")
	flags.StringVar(&app.overrides.rpcListen, "rpc-listen-address", "", "Override rpc.listen_address")
	flags.StringSliceVar(&app.overrides.listenAddresses, "listen-address", nil, "Override network.listen_addresses (repeatable)")
	flags.StringSliceVar(&app.overrides.bootnodes, "bootnode", nil, "Override network.bootnodes (repeatable)")

	root.AddCommand(
		newInitCmd(app),
		newValidateCmd(app),
		newShowCmd(app),
		newWatchCmd(app),
		newPeerIDCmd(app),
		newVersionCmd(app),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute(app *App, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrInvalidConfig) {
			s := newStyles(stderr)
			fmt.Fprintf(stderr, "%s %v\n", s.errorS.Render("Error:"), err)
		}
		return 1
	}
	return 0
}

// defaultConfigNames are tried in order inside ~/.ckb when --config is not set.
var defaultConfigNames = []string{"default.json", "default.yaml", "default.yml"}

// resolveConfigPath returns the config file the command operates on: --config, or
// the first default config found in ~/.ckb. With none present it names
// default.json so the not found error points at the JSON template.
func (a *App) resolveConfigPath() (string, error) {
	if a.configPath != "" {
		return filepath.Abs(a.configPath)
	}
	for _, name := range defaultConfigNames {
		path, err := config.DefaultPath(name)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return config.DefaultPath(defaultConfigNames[0])
}

// loadConfig loads the config file and applies environment and flag overrides in
// that order. The returned problems include override and validation errors; the
// config is nil only when the file could not be loaded.
func (a *App) loadConfig(cmd *cobra.Command) (*config.Config, string, []error) {
	path, err := a.resolveConfigPath()
	if err != nil {
		return nil, "", []error{err}
	}
	cfg, errs := a.loadConfigAt(cmd, path)
	return cfg, path, errs
}

func (a *App) loadConfigAt(cmd *cobra.Command, path string) (*config.Config, []error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, []error{err}
	}

	errs := config.ApplyEnvOverrides(cfg, a.Env)
	a.applyFlags(cmd, cfg)
	errs = append(errs, cfg.Validate()...)
	return cfg, errs
}

func (a *App) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = a.overrides.dataDir
	}
	if flags.Changed("chain-spec") {
		cfg.Chain.Spec = a.overrides.chainSpec
	}
	if flags.Changed("log-filter") {
		cfg.Logger.Filter = a.overrides.logFilter
	}
	if flags.Changed("rpc-listen-address") {
		cfg.RPC.ListenAddress = a.overrides.rpcListen
	}
	if flags.Changed("listen-address") {
		cfg.Network.ListenAddresses = append([]string{}, a.overrides.listenAddresses...)
	}
	if flags.Changed("bootnode") {
		cfg.Network.Bootnodes = append([]string{}, a.overrides.bootnodes...)
	}
}

// printProblems writes every problem with its path and hint.
func printProblems(w io.Writer, path string, errs []error) {
	s := newStyles(w)
	fmt.Fprintf(w, "%s %s\n", s.errorS.Render(fmt.Sprintf("Configuration errors (%d):", len(errs))), s.path.Render(path))
	for _, err := range errs {
		var ve config.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprintf(w, "  - %s: %s\n", s.path.Render(ve.Path), ve.Message)
			if ve.Hint != "" {
				fmt.Fprintf(w, "    %s\n", s.hint.Render(ve.Hint))
			}
			continue
		}
		fmt.Fprintf(w, "  - %v\n", err)
	}
}
