// Package store persists spectral libraries in SQLite: libraries with an
// ordered profile-field schema, features with optional point positions, and
// codec-encoded profile blobs per (feature, field) cell.
//
// Responsibilities: schema migrations, library/feature CRUD, and exposing
// stored features as grouping.Record streams.
// Key types: Store, Library, Feature.
//
// The profile blobs are opaque to this package; encoding and decoding
// belong to package profile.
package store
