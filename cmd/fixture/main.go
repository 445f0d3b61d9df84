// Command fixture runs the compiled-in demo suite.
//
// Programs with their own suites build the same command with
// cli.NewRootCommand(theirSuites...).
package main

import (
	"fmt"
	"os"

	"github.com/roach88/fixture/internal/cli"
	"github.com/roach88/fixture/internal/demo"
)

func main() {
	cmd := cli.NewRootCommand(demo.Suite())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
