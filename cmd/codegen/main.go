package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// baseDir resolves the data directory: CODEGEN_DATA_DIR wins, otherwise
// ~/.codegen.
func baseDir() (string, error) {
	if dir := os.Getenv("CODEGEN_DATA_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".codegen"), nil
}

func main() {
	dir, err := baseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	app := newCLIApp(dir)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
