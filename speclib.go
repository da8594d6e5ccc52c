// Package speclib re-exports the main entry points of the spectral-library
// toolkit so that simple callers need a single import. The implementation
// lives in the profile, grouping, block and store packages.
package speclib

import (
	"github.com/fieldspec/speclib/block"
	"github.com/fieldspec/speclib/grouping"
	"github.com/fieldspec/speclib/profile"
	"github.com/fieldspec/speclib/store"
)

// Value model and codec.

// Profile is one spectral measurement: paired x/y samples, units and an
// optional bad band list.
type Profile = profile.Profile

// Representation selects the storage form of an encoded profile.
type Representation = profile.Representation

// Grouping engine.

// Setting is the shared spectral grid that makes profiles stackable.
type Setting = grouping.Setting

// Record is the read-only view of one profile-bearing feature.
type Record = grouping.Record

// Group is one spectral-setting partition of a record batch.
type Group = grouping.Group

// Block assembly.

// Block is a dense stack of profiles sharing one spectral setting.
type Block = block.Block

// Storage.

// Store is a SQLite-backed spectral-library store.
type Store = store.Store

// Codec entry points.
var (
	// Encode serialises a profile into the requested representation.
	Encode = profile.Encode
	// Decode converts any storage representation back into a profile.
	// It is total; see profile.DecodeStrict for the corruption signal.
	Decode = profile.Decode
	// Validate reports whether a value is structurally a profile.
	Validate = profile.Validate
)

// GroupRecords partitions a record stream by spectral setting.
var GroupRecords = grouping.GroupRecords

// Assemble stacks one group into a block.
var Assemble = block.Assemble

// OpenStore opens a spectral-library store, migrating its schema.
var OpenStore = store.Open
