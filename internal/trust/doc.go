// Package trust implements the trust score aggregation engine.
//
// The Engine combines star ratings, reviewer credibility, review age, and a
// sentiment signal into one bounded score with a confidence level. It is a
// pure, synchronous computation: no internal goroutines, no shared mutable
// state, no I/O beyond the injected sentiment analyzer. Safe for concurrent
// use.
package trust
