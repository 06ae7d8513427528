package main

import (
	"os"

	"exelaunch/cmd"
)

// Set via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := cmd.Execute(version); err != nil {
		os.Exit(1)
	}
}
