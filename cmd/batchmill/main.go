// Command batchmill is the CLI entrypoint for the batch media
// transformation pipelines.
package main

import (
	"os"

	"github.com/backmassage/batchmill/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
