// Package source defines the example-sentence source implementations.
package source

import "github.com/LumaLabs/lexipage"

// ExampleSource is the interface for AI example-sentence backends.
// This is an alias to the main package interface for convenience.
type ExampleSource = lexipage.ExampleSource

// Entry is an alias to the main package type.
type Entry = lexipage.Entry
