package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &application{}
	defer app.close()

	rootCmd := newRootCmd(app)
	return rootCmd.ExecuteContext(context.Background())
}
