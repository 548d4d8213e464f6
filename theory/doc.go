// Package theory provides the opaque equational-theory descriptor.
//
// A Descriptor says which builtin theories (Diffie-Hellman, bilinear
// pairing, multiset, xor) the rewriting engine should enable and which
// user function symbols exist. The rewrite rules themselves live in
// the engine; this package only describes the configuration and keeps
// it comparable, orderable, and serializable.
package theory
