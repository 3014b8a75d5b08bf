package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON serializes a built document. Dict keys come out sorted, so equal
// documents print identically. indent is the number of spaces per level; 0
// prints compact JSON. HTML characters are not escaped, which keeps SVG
// payloads readable.
func WriteJSON(w io.Writer, doc any, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
