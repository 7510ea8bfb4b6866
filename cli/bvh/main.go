// Package main is the bvh command line tool.
package main

import (
	"fmt"
	"os"

	"go.viam.com/bvhtree/cli"
)

func main() {
	app := cli.NewApp(os.Stdout, nil)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
