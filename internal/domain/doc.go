// Package domain defines the core domain types and interfaces.
//
// This package contains the review and trust score data model plus the
// cross-cutting interfaces the application layer depends on (review sources,
// sentiment analyzer, score cache, event publisher). No implementation code -
// just contracts. Prevents circular imports by keeping interfaces on the
// consumer side.
package domain
