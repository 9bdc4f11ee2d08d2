// minishare - share 5x4 chess positions as short URL-safe codes
package main

import (
	"os"

	"github.com/hailam/minishare/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
