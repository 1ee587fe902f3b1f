package main

import (
	"os"

	"github.com/dendrascience/crosshash/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
