// Package template defines the template rendering contract used by sentence
// carriers. The gotemplate subpackage provides a pongo2-backed engine with the
// built-in carrier templates embedded.
package template
