package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// PrintBanner prints the ASCII art banner in magenta when colors are enabled.
func PrintBanner() {
	banner := ` __     ___     _ ____
 \ \   / (_) __| |  _ \ _ __ ___  ___ ___
  \ \ / /| |/ _` + "`" + ` | |_) | '__/ _ \/ __/ __|
   \ V / | | (_| |  __/| | |  __/\__ \__ \
    \_/  |_|\__,_|_|   |_|  \___||___/___/
`
	color.New(color.FgHiMagenta, color.Bold).Fprint(os.Stdout, banner)
	fmt.Fprintln(os.Stdout)
}
