// Package apng assembles still PNG streams into an Animated PNG and
// decomposes an Animated PNG back into standalone PNG streams.
//
// Only the chunk layer is touched: image data is carried as opaque
// compressed fragments, and disposal and blend operators are passed through
// without being applied. Use image/png to look at the pixels of a frame
// produced by Decode.
//
// For format details, see:
//
// https://wiki.mozilla.org/APNG_Specification
// https://www.w3.org/TR/PNG/
package apng
