package fspath

import (
	"net/url"
	"path"
	"strings"
)

// Generator generates a relative, solidus delimited file path
// from a given document identifier.  Generated paths locate
// corrected documents within an output directory.
type Generator interface {
	Generate(string) string
}

// GeneratorFunc is a function that can be used to satisfy the Generator interface
type GeneratorFunc func(string) string

// Generate a path from a given id string
func (g GeneratorFunc) Generate(id string) string {
	return g(id)
}

// Escaped names each document after its query escaped identifier, in a single
// flat directory.
var Escaped = GeneratorFunc(func(id string) string {
	return url.QueryEscape(id) + ".json"
})

// ByHost groups documents into one directory per host.  Within it, documents
// are named after the escaped remainder of their identifier.  Identifiers that
// are not absolute URIs are placed under "_".
var ByHost = GeneratorFunc(func(id string) string {
	u, err := url.Parse(id)
	if err != nil || u.Hostname() == "" {
		return path.Join("_", Escaped(id))
	}

	rest := strings.Trim(u.RequestURI(), "/")
	if rest == "" {
		rest = "index"
	}

	return path.Join(strings.ToLower(u.Hostname()), url.QueryEscape(rest)+".json")
})
