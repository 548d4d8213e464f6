// Package wire provides the binary primitives for the persisted
// signature format: unsigned LEB128 varints, length-prefixed UTF-8
// strings, and single-byte booleans.
//
// Decoding is strict: lengths and counts are bounded, booleans must be
// 0 or 1, and strings must be valid UTF-8, so every encodable value
// has exactly one encoding.
package wire
