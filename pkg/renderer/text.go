package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/checkdisout/checkdisout/pkg/layout"
)

// unitsPerSpace converts indents to preview spaces.
const unitsPerSpace = 2.5

// Text renders doc as a plain-text preview with page separators.
func Text(doc layout.Document) (text string) {
	var b strings.Builder
	for i, page := range doc.Pages {
		fmt.Fprintf(&b, "--- page %d ---\n", i+1)
		for _, line := range page.Lines {
			indent := int(math.Round((line.X - doc.Geometry.LeftMargin) / unitsPerSpace))
			if indent > 0 {
				b.WriteString(strings.Repeat(" ", indent))
			}
			b.WriteString(line.Text)
			if line.Link != "" && line.Link != line.Text {
				fmt.Fprintf(&b, " <%s>", line.Link)
			}
			b.WriteString("\n")
		}
	}
	text = b.String()
	return text
}
