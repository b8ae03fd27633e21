// Command recstore manages a Routine Rocket record store from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/routinerocket/recstore/cmd/recstore/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
