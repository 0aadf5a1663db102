package main

import (
	"os"

	"github.com/Osub/ckb/pkg/cli"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	app := &cli.App{
		Build: cli.BuildInfo{
			Version: version,
			Commit:  commit,
			Date:    date,
		},
	}
	os.Exit(cli.Execute(app, os.Args[1:], os.Stdout, os.Stderr))
}
