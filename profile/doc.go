// Package profile owns the spectral profile value model and its codec.
//
// Responsibilities: the Profile value type (paired x/y samples, units and
// bad band list), structural validation, and the reversible mapping between
// a Profile and its three storage representations (binary blob, JSON text,
// native map).
// Key types: Profile, XValue, Representation.
//
// Dependency rule: this is the leaf package of the data model. It must not
// import grouping, block or store.
package profile
