package main

import (
	"commute-learning-service/internal/cli"
	"fmt"
	"os"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
