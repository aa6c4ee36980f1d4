// Package location normalizes bundle locations before artifact resolution.
//
// Feature descriptors may decorate a location with a protocol that changes how the
// runtime installs the artifact (wrap:, blueprint:, webbundle:, war:). The artifact
// itself is the same file, so the decoration is stripped before it is looked up.
package location

import "strings"

// Prefix is a recognised location decoration
type Prefix struct {
	// Scheme is the literal prefix, including the trailing colon
	Scheme string

	// Description is shown in debug logs
	Description string
}

// Prefixes lists the recognised decorations in the order they are stripped
var Prefixes = []Prefix{
	{Scheme: "wrap:", Description: "bnd wrapped jar"},
	{Scheme: "blueprint:", Description: "blueprint xml deployer"},
	{Scheme: "webbundle:", Description: "web application bundle"},
	{Scheme: "war:", Description: "web archive"},
}

// MavenScheme is the scheme of maven coordinates
const MavenScheme = "mvn:"

// wrapInstructions separates a wrap: location from its bnd instructions
const wrapInstructions = "$"

// Strip removes every recognised prefix, in table order, from location.
// Instructions appended to a wrap: location are dropped as well.
func Strip(location string) string {
	stripped := strings.TrimSpace(location)
	wrapped := strings.HasPrefix(stripped, Prefixes[0].Scheme)
	for _, p := range Prefixes {
		stripped = strings.TrimPrefix(stripped, p.Scheme)
	}
	if wrapped {
		if i := strings.Index(stripped, wrapInstructions); i >= 0 {
			stripped = stripped[:i]
		}
	}
	return stripped
}

// PrefixOf returns the recognised prefix location starts with, if any
func PrefixOf(location string) (Prefix, bool) {
	for _, p := range Prefixes {
		if strings.HasPrefix(location, p.Scheme) {
			return p, true
		}
	}
	return Prefix{}, false
}

// IsMaven reports whether the (stripped) location is a maven coordinate
func IsMaven(location string) bool {
	return strings.HasPrefix(Strip(location), MavenScheme)
}
