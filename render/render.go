package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Doc is a structured document: a sequence of blocks rendered
// top-to-bottom with blank-line separation. The zero value is the
// empty document, which renders as "".
type Doc struct {
	blocks []string
}

// Empty returns the empty document.
func Empty() Doc {
	return Doc{}
}

// Block appends a block and returns the extended document. Empty
// blocks are dropped.
func (d Doc) Block(text string) Doc {
	if text == "" {
		return d
	}
	blocks := make([]string, 0, len(d.blocks)+1)
	blocks = append(blocks, d.blocks...)
	blocks = append(blocks, text)
	return Doc{blocks: blocks}
}

// IsEmpty reports whether the document has no blocks.
func (d Doc) IsEmpty() bool {
	return len(d.blocks) == 0
}

// String renders the document with plain styles.
func (d Doc) String() string {
	return d.Render(PlainStyles())
}

// Render renders the document with the given styles. Blocks are
// separated by one blank line; no trailing newline is emitted.
func (d Doc) Render(st Styles) string {
	if len(d.blocks) == 0 {
		return ""
	}
	parts := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		parts[i] = st.Block.Render(b)
	}
	return strings.Join(parts, "\n\n")
}

// Labeled builds a "label: body" line.
func Labeled(label, body string) string {
	return label + ": " + body
}

// CommaSep joins items with ", ".
func CommaSep(items []string) string {
	return strings.Join(items, ", ")
}

// Styles controls block presentation. PlainStyles renders text
// unchanged; callers that want color configure their own.
type Styles struct {
	Block lipgloss.Style
}

// PlainStyles returns styles that leave text untouched, so library
// output is byte-stable regardless of terminal.
func PlainStyles() Styles {
	return Styles{Block: lipgloss.NewStyle()}
}
