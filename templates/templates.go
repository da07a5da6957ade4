// Package templates carries the function library available to QuickDrop's
// HTML pages: the sprig collection plus a path helper of our own.
package templates

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/Masterminds/sprig/v3"
)

var sprigFuncMap = sprig.HtmlFuncMap()

// New returns an empty template preconfigured with the shared function map.
func New(name string) *template.Template {
	tpl := template.New(name).Option("missingkey=zero")

	// add sprig library
	tpl.Funcs(sprigFuncMap)

	// add our own library
	tpl.Funcs(template.FuncMap{
		"pathEscape": PathEscape,
	})
	return tpl
}

// PathEscape percent-encodes each segment of a slash-separated virtual path
// while keeping the separators, so the result is usable inside an href.
func PathEscape(p string) string {
	if p == "" {
		return ""
	}
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
