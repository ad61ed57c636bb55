package main

import (
	"fmt"
	"os"

	"github.com/spacesedan/sentiscope/config"
)

func main() {
	config.LoadEnv(config.AppEnv())

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
