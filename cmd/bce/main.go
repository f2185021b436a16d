// Command bce balances chemical equations.
package main

import (
	"os"

	"github.com/bce-toolkit/bce/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
