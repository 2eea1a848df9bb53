// Package app is the application layer - the only component that references
// multiple domain components. It orchestrates the trust score use cases:
// fetch from both review sources, merge, aggregate or analyze, cache, publish.
package app
