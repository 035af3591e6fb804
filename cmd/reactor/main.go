// Command reactor runs the bundled news reader on the reactor runtime.
package main

import (
	"os"

	"github.com/Iron-Ham/reactor/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
