// Package grouping partitions batches of profile-bearing records by their
// spectral setting: the shared x-axis, units and bad band list that make a
// set of profiles stackable into one dense block.
//
// Responsibilities: the immutable Setting key, field selection against a
// record schema, and the single-pass streaming grouping engine.
// Key types: Setting, Record, FieldRef, Group.
//
// Dependency rule: may depend on profile, never on block or store.
package grouping
