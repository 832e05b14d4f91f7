// Command blockrt runs, inspects and tests block diagrams.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/blockrt/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
