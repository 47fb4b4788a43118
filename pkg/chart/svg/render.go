package svg

import (
	"bytes"
	"fmt"
)

// Render emits a standalone SVG document of the given size containing root.
func Render(root Element, width, height float64) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if root != nil {
		root.WriteSVG(&buf, "  ")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
