// Package fact provides fact symbols (tags) and canonical tag sets.
//
// A Tag names a fact symbol together with its arity. A TagSet holds
// the fact symbols a signature declares as unique-instance: facts that
// occur at most once per analysis run, used downstream for freshness
// and uniqueness reasoning. Membership is meaningful, order is not;
// the set keeps a sorted canonical form so that equal sets encode and
// render identically.
package fact
