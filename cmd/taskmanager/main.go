package main

import (
	"os"

	"github.com/ariel-frischer/taskmanager/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
