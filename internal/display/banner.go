package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner writes the ASCII art banner to w. Coloring follows the global
// color setting applied by term.Configure.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, bannerColor.Sprint(`     _ _                          _ _
 ___(_) |_ ___ _ __ ___   ___  __| (_) __ _
/ __| | __/ _ \ '_ `+"`"+` _ \ / _ \/ _`+"`"+` | |/ _`+"`"+` |
\__ \ | ||  __/ | | | | |  __/ (_| | | (_| |
|___/_|\__\___|_| |_| |_|\___|\__,_|_|\__,_|`))
}
