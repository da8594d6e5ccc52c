package profile

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fxamacker/cbor/v2"
)

// Representation selects the storage form of an encoded profile.
type Representation int

const (
	// Bytes is a self-describing CBOR map, used for blob-typed table cells.
	Bytes Representation = iota
	// Text is a JSON object string, used for text interchange formats.
	Text
	// Map is a native map[string]any, used when the storage layer already
	// holds structured values.
	Map
)

func (r Representation) String() string {
	switch r {
	case Bytes:
		return "bytes"
	case Text:
		return "text"
	case Map:
		return "map"
	default:
		return fmt.Sprintf("Representation(%d)", int(r))
	}
}

// Wire keys shared by all three representations. Absent components are
// omitted, never encoded as nulls.
const (
	keyX     = "x"
	keyY     = "y"
	keyXUnit = "xUnit"
	keyYUnit = "yUnit"
	keyBBL   = "bbl"
)

// Encode serialises a profile into the requested representation. Encoding is
// pure and tolerant: it does not enforce the length invariants (call Valid
// for that), it simply writes whatever the profile carries, sparsely.
func Encode(p Profile, r Representation) (any, error) {
	switch r {
	case Bytes:
		return EncodeBytes(p)
	case Text:
		return EncodeText(p)
	case Map:
		return EncodeMap(p), nil
	default:
		return nil, fmt.Errorf("unknown profile representation %d", int(r))
	}
}

// EncodeMap serialises a profile into the native map representation.
func EncodeMap(p Profile) map[string]any {
	m := make(map[string]any, 5)
	if p.X != nil {
		xs := make([]any, len(p.X))
		for i, v := range p.X {
			if v.IsDate() {
				xs[i] = v.Date
			} else {
				xs[i] = v.Num
			}
		}
		m[keyX] = xs
	}
	if p.Y != nil {
		// Copied so the encoded form never aliases the profile's buffer.
		ys := make([]float64, len(p.Y))
		copy(ys, p.Y)
		m[keyY] = ys
	}
	if p.XUnit != "" {
		m[keyXUnit] = p.XUnit
	}
	if p.YUnit != "" {
		m[keyYUnit] = p.YUnit
	}
	if p.BBL != nil {
		bbl := make([]int, len(p.BBL))
		copy(bbl, p.BBL)
		m[keyBBL] = bbl
	}
	return m
}

// EncodeText serialises a profile into the JSON text representation.
func EncodeText(p Profile) (string, error) {
	b, err := json.Marshal(EncodeMap(p))
	if err != nil {
		return "", fmt.Errorf("encode profile text: %w", err)
	}
	return string(b), nil
}

// EncodeBytes serialises a profile into the binary blob representation.
func EncodeBytes(p Profile) ([]byte, error) {
	b, err := cbor.Marshal(EncodeMap(p))
	if err != nil {
		return nil, fmt.Errorf("encode profile bytes: %w", err)
	}
	return b, nil
}

// Decode converts any of the storage representations back into a Profile.
// It is total: empty sentinels (nil, "", zero-length blob) and malformed
// payloads both come back as the canonical empty profile, never an error.
// Callers that must tell corruption apart from a legitimately empty cell
// use DecodeStrict.
func Decode(payload any) Profile {
	p, _ := DecodeStrict(payload)
	return p
}

// DecodeStrict behaves like Decode but additionally reports why a payload
// could not be decoded. The returned profile is always usable; on error it
// is the canonical empty profile.
func DecodeStrict(payload any) (Profile, error) {
	switch t := payload.(type) {
	case nil:
		return Empty(), nil
	case Profile:
		return t.Clone(), nil
	case *Profile:
		if t == nil {
			return Empty(), nil
		}
		return t.Clone(), nil
	case []byte:
		return decodeBlob(t)
	case string:
		return decodeString(t)
	case map[string]any:
		return decodeMap(t)
	default:
		return Empty(), fmt.Errorf("cannot decode profile from %T", payload)
	}
}

// decodeBlob handles the bytes representation. The primary format is CBOR;
// blobs written by earlier releases stored the JSON text form directly, so
// JSON is accepted as a legacy fallback.
func decodeBlob(b []byte) (Profile, error) {
	if len(b) == 0 {
		return Empty(), nil
	}
	var m map[string]any
	if err := cbor.Unmarshal(b, &m); err == nil {
		return decodeMap(m)
	}
	if err := json.Unmarshal(b, &m); err == nil {
		return decodeMap(m)
	}
	return Empty(), fmt.Errorf("profile blob is neither CBOR nor JSON")
}

func decodeString(s string) (Profile, error) {
	if s == "" {
		return Empty(), nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return Empty(), fmt.Errorf("decode profile text: %w", err)
	}
	return decodeMap(m)
}

// decodeMap canonicalises a wire map into a Profile. The map may come from
// the JSON decoder (float64 numbers), the CBOR decoder (int64/uint64
// numbers, []any containers) or directly from a caller (typed slices), so
// every sequence is coerced element-wise.
func decodeMap(m map[string]any) (Profile, error) {
	var p Profile
	if v, ok := m[keyX]; ok && v != nil {
		xs, ok := toXValues(v)
		if !ok {
			return Empty(), fmt.Errorf("profile key %q is not a sequence of numbers or dates", keyX)
		}
		p.X = xs
	}
	if v, ok := m[keyY]; ok && v != nil {
		ys, ok := toFloats(v)
		if !ok {
			return Empty(), fmt.Errorf("profile key %q is not a numeric sequence", keyY)
		}
		p.Y = ys
	}
	if v, ok := m[keyBBL]; ok && v != nil {
		bbl, ok := toInts(v)
		if !ok {
			return Empty(), fmt.Errorf("profile key %q is not an integer sequence", keyBBL)
		}
		p.BBL = bbl
	}
	var ok bool
	if p.XUnit, ok = toUnit(m[keyXUnit]); !ok {
		return Empty(), fmt.Errorf("profile key %q is not a string", keyXUnit)
	}
	if p.YUnit, ok = toUnit(m[keyYUnit]); !ok {
		return Empty(), fmt.Errorf("profile key %q is not a string", keyYUnit)
	}
	return p, nil
}

func toUnit(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	default:
		return "", false
	}
}

// toFloat coerces the scalar types the JSON and CBOR decoders produce.
func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func toFloats(v any) ([]float64, bool) {
	switch t := v.(type) {
	case []float64:
		out := make([]float64, len(t))
		copy(out, t)
		return out, true
	case []any:
		out := make([]float64, len(t))
		for i, e := range t {
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	case []float32:
		out := make([]float64, len(t))
		for i, e := range t {
			out[i] = float64(e)
		}
		return out, true
	case []int:
		out := make([]float64, len(t))
		for i, e := range t {
			out[i] = float64(e)
		}
		return out, true
	case []int64:
		out := make([]float64, len(t))
		for i, e := range t {
			out[i] = float64(e)
		}
		return out, true
	default:
		return nil, false
	}
}

func toInts(v any) ([]int, bool) {
	fs, ok := toFloats(v)
	if !ok {
		return nil, false
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		n := int(f)
		if float64(n) != f {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func toXValues(v any) ([]XValue, bool) {
	switch t := v.(type) {
	case []XValue:
		out := make([]XValue, len(t))
		copy(out, t)
		return out, true
	case []string:
		out := make([]XValue, len(t))
		for i, s := range t {
			out[i] = XDate(s)
		}
		return out, true
	case []any:
		out := make([]XValue, len(t))
		for i, e := range t {
			if s, ok := e.(string); ok {
				// A numeric string is still a number; vendor text files
				// quote wavelengths surprisingly often.
				if f, err := strconv.ParseFloat(s, 64); err == nil {
					out[i] = XNum(f)
				} else {
					out[i] = XDate(s)
				}
				continue
			}
			f, ok := toFloat(e)
			if !ok {
				return nil, false
			}
			out[i] = XNum(f)
		}
		return out, true
	default:
		if fs, ok := toFloats(v); ok {
			return XNums(fs), true
		}
		return nil, false
	}
}
