// Package block assembles groups of profiles that share one spectral
// setting into dense numeric blocks for vectorized processing, and converts
// blocks back into per-feature profiles.
//
// Responsibilities: buffer layout and masking, per-profile geolocation,
// variant-map round trips, and per-band aggregation over a block.
// Key types: Block, Extracted.
//
// Dependency rule: may depend on profile and grouping, never on store.
package block
