package grouping

import (
	"iter"

	"github.com/fieldspec/speclib/profile"
)

// Options configures one grouping pass. The zero value selects the first
// profile-capable field, drops empty and undecodable profiles, and groups
// across source fields.
type Options struct {
	// Field selects the profile field to decode on each record.
	Field FieldRef
	// KeepEmpty retains records whose profile decodes empty, grouped under
	// the zero-band setting. Default is to exclude them from every group.
	KeepEmpty bool
	// GroupByField makes settings from different source fields distinct
	// even when their spectral grids are identical. Call sites in the wild
	// disagree on this, so it is a policy knob rather than a fixed rule.
	GroupByField bool
}

// Group is one partition of the input: every member record's profile shares
// the Setting's spectral grid. Records and Profiles are parallel slices in
// input encounter order; Profiles holds the already-decoded values so that
// block assembly does not decode twice.
type Group struct {
	Setting  Setting
	Records  []Record
	Profiles []ProfileOf
}

// ProfileOf pairs a decoded profile with the identifier of the record it
// came from.
type ProfileOf struct {
	FID     int64
	Profile profile.Profile
}

// GroupRecords partitions a stream of records by spectral setting in a
// single pass. The input may be lazy and of unknown length; the engine keeps
// no state beyond the result map and the field resolved against the first
// record's schema. An empty input yields an empty map. An unresolvable field
// selector is a configuration error and aborts the pass; a record whose
// profile fails to decode is skipped (under the default policy) and the
// pass continues.
//
// The result maps Setting.Key() to its group. Membership order within a
// group follows input order; the map itself has no order.
func GroupRecords(records iter.Seq[Record], opts Options) (map[string]*Group, error) {
	groups := make(map[string]*Group)
	resolved := false
	fieldName := ""
	for rec := range records {
		if !resolved {
			var err error
			_, fieldName, err = opts.Field.resolve(rec)
			if err != nil {
				return nil, err
			}
			resolved = true
		}
		raw, ok := rec.Attribute(fieldName)
		if !ok {
			continue
		}
		p := profile.Decode(raw)
		if len(p.Y) == 0 && !opts.KeepEmpty {
			continue
		}
		s := NewSetting(p, fieldName)
		key := s.Key()
		if opts.GroupByField {
			key = fieldName + "\x00" + key
		}
		g, ok := groups[key]
		if !ok {
			g = &Group{Setting: s}
			groups[key] = g
		}
		g.Records = append(g.Records, rec)
		g.Profiles = append(g.Profiles, ProfileOf{FID: rec.ID(), Profile: p})
	}
	return groups, nil
}

// NProfiles returns the total membership across all groups.
func NProfiles(groups map[string]*Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Records)
	}
	return n
}
