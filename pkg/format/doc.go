// Package format provides Formatter strategies that turn a selected fragment
// subsequence into the phrase embedded in the generated sentence.
//
// Formatters never reorder their input. Plain joins lines with the layout
// separator, Duplicate echoes every line before joining, and HTML sanitizes
// each line before delegating to another formatter. Layouts can be resolved
// from go-theme manifests through ResolveLayout; the token "poem.separator"
// sets the separator verbatim while "poem.indent" yields a newline followed by
// the indent.
package format
