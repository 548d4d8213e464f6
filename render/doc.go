// Package render provides the small block-document model the
// signature pretty-printer emits into. The library supplies structure
// and content only; styling belongs to callers (the sigtool CLI
// applies lipgloss styles, tests and files use the plain default).
package render
