package grouping

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/fieldspec/speclib/profile"
)

// Record is the read-only view of one profile-bearing feature. Anything
// exposing a stable identifier, named attribute access and an ordered field
// list can be grouped; a point position is optional. The engine never
// mutates a record and copies every value it keeps.
type Record interface {
	// ID returns the stable feature identifier.
	ID() int64
	// Fields returns the ordered field names of the record's schema.
	Fields() []string
	// Attribute returns the raw value of the named field. The second
	// result is false when the field does not exist on this record.
	Attribute(name string) (any, bool)
	// Point returns the record's 2D position. The second result is false
	// when the record carries no geometry.
	Point() (orb.Point, bool)
}

// Field describes one field of a record schema: its name and position.
// Stores and format readers hand these out; a Field from one schema can be
// used to select the matching field in another.
type Field struct {
	Name  string
	Index int
}

// FieldRef selects the profile field to group on. The zero value selects
// the first profile-capable field found on the first record.
type FieldRef struct {
	kind  fieldRefKind
	index int
	name  string
}

type fieldRefKind int

const (
	fieldAuto fieldRefKind = iota
	fieldByIndex
	fieldByName
	fieldByDescriptor
)

// FieldAuto selects the first field whose value decodes to a valid profile.
func FieldAuto() FieldRef { return FieldRef{} }

// FieldIndex selects a field by position in the record schema.
func FieldIndex(i int) FieldRef { return FieldRef{kind: fieldByIndex, index: i} }

// FieldName selects a field by name.
func FieldName(name string) FieldRef { return FieldRef{kind: fieldByName, name: name} }

// FieldDesc selects a field by descriptor: the name is matched against the
// schema first, the index is the fallback for renamed fields.
func FieldDesc(f Field) FieldRef {
	return FieldRef{kind: fieldByDescriptor, index: f.Index, name: f.Name}
}

func (r FieldRef) String() string {
	switch r.kind {
	case fieldByIndex:
		return fmt.Sprintf("field #%d", r.index)
	case fieldByName:
		return fmt.Sprintf("field %q", r.name)
	case fieldByDescriptor:
		return fmt.Sprintf("field %q (#%d)", r.name, r.index)
	default:
		return "first profile field"
	}
}

// resolve maps the selector onto an index into the schema of the first
// record. Resolution happens once per pass; failure is a configuration
// error, not bad data.
func (r FieldRef) resolve(first Record) (int, string, error) {
	fields := first.Fields()
	switch r.kind {
	case fieldByIndex:
		if r.index < 0 || r.index >= len(fields) {
			return 0, "", fmt.Errorf("%s out of range, record has %d fields", r, len(fields))
		}
		return r.index, fields[r.index], nil
	case fieldByName:
		for i, name := range fields {
			if name == r.name {
				return i, name, nil
			}
		}
		return 0, "", fmt.Errorf("%s not found in record schema %v", r, fields)
	case fieldByDescriptor:
		for i, name := range fields {
			if name == r.name {
				return i, name, nil
			}
		}
		if r.index >= 0 && r.index < len(fields) {
			return r.index, fields[r.index], nil
		}
		return 0, "", fmt.Errorf("%s not found in record schema %v", r, fields)
	default:
		for i, name := range fields {
			v, ok := first.Attribute(name)
			if !ok {
				continue
			}
			if p, err := profile.DecodeStrict(v); err == nil && p.Valid() && !p.IsEmpty() {
				return i, name, nil
			}
		}
		return 0, "", fmt.Errorf("no profile-capable field in record schema %v", fields)
	}
}
