// Package main provides the escc CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/maloquacious/semver"
)

var version = semver.Version{
	Major: 0,
	Minor: 4,
	Patch: 0,
	Build: semver.Commit(),
}

func main() {
	// if version is on the command line, show it and exit
	for _, arg := range os.Args {
		if arg == "-version" || arg == "--version" {
			fmt.Printf("%s\n", version.Short())
			return
		} else if arg == "-build-info" || arg == "--build-info" {
			fmt.Printf("%s\n", version.String())
			return
		}
	}

	os.Exit(run(os.Stdout, os.Stderr, os.Args[1:]))
}
