// costbook CLI de administración: semilla, respaldo, restauración y reportes.
//
// Uso: go run ./cmd/costbook --help
package main

import (
	"os"

	cc "github.com/ivanpirog/coloredcobra"

	"github.com/jhoicas/Costbook-api/internal/interfaces/cli"
)

func main() {
	root := cli.NewRootCommand()
	cc.Init(&cc.Config{
		RootCmd:         root,
		Headings:        cc.HiCyan + cc.Bold + cc.Underline,
		Commands:        cc.HiYellow + cc.Bold,
		Example:         cc.Italic,
		ExecName:        cc.Bold,
		Flags:           cc.Bold,
		NoExtraNewlines: true,
		NoBottomNewline: true,
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
