package main

import (
	"fmt"
	"os"

	"github.com/dora-network/dora-safemath/internal/cli"
	"github.com/dora-network/dora-safemath/logger"
)

func main() {
	logger.AddFieldsToGlobal(map[string]any{"version": cli.Version})

	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
