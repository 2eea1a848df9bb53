// Package sentiment adapts an external text classifier to the polarity
// contract the trust engine consumes: text in, a value in [-1,1] out, neutral
// 0 on empty input or any failure. The engine never sees an analyzer error.
package sentiment
