// gh-search searches GitHub code and gists through the gh CLI.
package main

import (
	"os"

	"github.com/jparise/gh-search/cmd"
	"github.com/jparise/gh-search/internal/github"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(github.ExitCode(err))
	}
}
