package display

import (
	"fmt"
	"os"

	"github.com/backmassage/batchmill/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if logging.Magenta != "" {
		fmt.Fprint(os.Stdout, "\033[1;95m")
	}
	fmt.Fprint(os.Stdout, ` ____        _       _               _ _ _
| __ )  __ _| |_ ___| |__  _ __ ___ (_) | |
|  _ \ / _`+"`"+` | __/ __| '_ \| '_ `+"`"+` _ \| | | |
| |_) | (_| | || (__| | | | | | | | | | | |
|____/ \__,_|\__\___|_| |_|_| |_| |_|_|_|_|
`)
	if logging.Magenta != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
