package main

import (
	"os"

	"places-server/cmd/placesctl/tool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
