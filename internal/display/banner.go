package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var bannerColor = color.New(color.FgHiMagenta, color.Bold)

// PrintBanner prints the ASCII art banner, in magenta when colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, bannerColor.Sprint(` _                       _____
| |    ___  _ __   __ _  | ____|_  ___ __   ___  ___ _   _ _ __ ___
| |   / _ \| '_ \ / _`+"`"+` | |  _| \ \/ / '_ \ / _ \/ __| | | | '__/ _ \
| |__| (_) | | | | (_| | | |___ >  <| |_) | (_) \__ \ |_| | | |  __/
|_____\___/|_| |_|\__, | |_____/_/\_\ .__/ \___/|___/\__,_|_|  \___|
                  |___/             |_|`))
}
