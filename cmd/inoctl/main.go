package main

import (
	"fmt"
	"os"

	"inoctl"
)

// version is injected during build by ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(inoctl.ExitStatus(err))
	}
}
