package profile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func roundTripProfiles() map[string]Profile {
	return map[string]Profile{
		"y only":     {Y: []float64{1, 2, 3}},
		"full":       {X: XNums([]float64{400, 410, 420}), Y: []float64{0.1, 0.2, 0.3}, XUnit: "nm", YUnit: "Reflectance", BBL: []int{1, 0, 1}},
		"dates":      {X: []XValue{XDate("2024-01-01"), XDate("2024-02-01")}, Y: []float64{5, 6}, XUnit: "DateTime"},
		"empty y":    {Y: []float64{}},
		"units only": {XUnit: "nm", YUnit: "Radiance"},
		"mismatched": {X: XNums([]float64{1, 2, 3, 4}), Y: []float64{1, 2, 3}}, // invalid but must round-trip
		"empty":      {},
	}
}

func TestRoundTripAllRepresentations(t *testing.T) {
	for name, p := range roundTripProfiles() {
		for _, r := range []Representation{Bytes, Text, Map} {
			t.Run(name+"/"+r.String(), func(t *testing.T) {
				enc, err := Encode(p, r)
				if err != nil {
					t.Fatalf("Encode: %v", err)
				}
				got, err := DecodeStrict(enc)
				if err != nil {
					t.Fatalf("DecodeStrict: %v", err)
				}
				if !got.Equal(p) {
					t.Errorf("round trip mismatch:\n  got  %+v\n  want %+v", got, p)
				}
			})
		}
	}
}

func TestEncodedFormIsSparse(t *testing.T) {
	m := EncodeMap(Profile{Y: []float64{1, 2, 3}})
	if len(m) != 1 {
		t.Errorf("encoded map has %d keys, expected only y: %v", len(m), m)
	}
	if _, ok := m["x"]; ok {
		t.Error("absent x must be omitted, not stored as null")
	}

	s, err := EncodeText(Profile{})
	if err != nil {
		t.Fatal(err)
	}
	if s != "{}" {
		t.Errorf("empty profile text = %q, expected {}", s)
	}
}

func TestDecodeEmptySentinels(t *testing.T) {
	sentinels := map[string]any{
		"nil":          nil,
		"empty string": "",
		"empty blob":   []byte{},
		"empty map":    map[string]any{},
	}
	for name, payload := range sentinels {
		t.Run(name, func(t *testing.T) {
			p, err := DecodeStrict(payload)
			if err != nil {
				t.Fatalf("DecodeStrict(%v): %v", payload, err)
			}
			if !p.IsEmpty() {
				t.Errorf("decode of empty sentinel = %+v, expected empty profile", p)
			}
		})
	}
}

func TestDecodeMalformedDegradesToEmpty(t *testing.T) {
	payloads := map[string]any{
		"garbage text":    "][ not json",
		"garbage blob":    []byte{0x01, 0x02, 0xff},
		"wrong y type":    map[string]any{"y": "loud"},
		"wrong x element": map[string]any{"x": []any{1.0, true}, "y": []float64{1, 2}},
		"wrong unit type": map[string]any{"y": []float64{1}, "xUnit": 7},
		"unsupported":     struct{}{},
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			if p := Decode(payload); !p.IsEmpty() {
				t.Errorf("Decode(%v) = %+v, expected empty profile", payload, p)
			}
			if _, err := DecodeStrict(payload); err == nil {
				t.Error("DecodeStrict should report the corruption")
			}
		})
	}
}

// Older libraries stored the JSON text form directly as the blob; the bytes
// path must keep accepting those.
func TestDecodeLegacyJSONBlob(t *testing.T) {
	legacy := []byte(`{"x":[400,410],"y":[0.1,0.2],"xUnit":"nm"}`)
	got, err := DecodeStrict(legacy)
	if err != nil {
		t.Fatalf("DecodeStrict: %v", err)
	}
	want := Profile{X: XNums([]float64{400, 410}), Y: []float64{0.1, 0.2}, XUnit: "nm"}
	if !got.Equal(want) {
		t.Errorf("legacy blob decode mismatch:\n  got  %+v\n  want %+v", got, want)
	}
}

// Container types must not matter: the same logical profile arriving as
// typed slices, []any, or integer-valued sequences decodes identically.
func TestDecodeCanonicalisesContainers(t *testing.T) {
	want := Profile{X: XNums([]float64{1, 2, 3}), Y: []float64{4, 5, 6}, BBL: []int{1, 1, 0}}
	variants := map[string]map[string]any{
		"typed slices": {"x": []float64{1, 2, 3}, "y": []float64{4, 5, 6}, "bbl": []int{1, 1, 0}},
		"any slices":   {"x": []any{1.0, 2.0, 3.0}, "y": []any{4.0, 5.0, 6.0}, "bbl": []any{1.0, 1.0, 0.0}},
		"ints":         {"x": []int{1, 2, 3}, "y": []int{4, 5, 6}, "bbl": []int64{1, 1, 0}},
		"cbor scalars": {"x": []any{uint64(1), uint64(2), uint64(3)}, "y": []any{int64(4), uint64(5), 6.0}, "bbl": []any{uint64(1), int64(1), uint64(0)}},
	}
	for name, m := range variants {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeStrict(m)
			if err != nil {
				t.Fatalf("DecodeStrict: %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("mismatch:\n  got  %+v\n  want %+v", got, want)
			}
		})
	}
}

func TestDecodeQuotedNumbersInX(t *testing.T) {
	got, err := DecodeStrict(map[string]any{"x": []any{"400", "410"}, "y": []float64{1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	want := Profile{X: XNums([]float64{400, 410}), Y: []float64{1, 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("quoted numeric x not canonicalised (-want +got):\n%s", diff)
	}
}

func TestDecodeDoesNotAliasPayload(t *testing.T) {
	y := []float64{1, 2, 3}
	p := Decode(map[string]any{"y": y})
	y[0] = 99
	if p.Y[0] != 1 {
		t.Error("decoded profile aliases the caller's slice")
	}
}

// Concrete scenario from the interchange contract: a minimal y-only profile
// through the blob representation.
func TestScenarioEncodeDecodeBytes(t *testing.T) {
	enc, err := Encode(Profile{Y: []float64{1, 2, 3}}, Bytes)
	if err != nil {
		t.Fatal(err)
	}
	blob, ok := enc.([]byte)
	if !ok {
		t.Fatalf("Bytes representation produced %T", enc)
	}
	got := Decode(blob)
	want := Profile{Y: []float64{1, 2, 3}}
	if !got.Equal(want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.X != nil || got.XUnit != "" || got.YUnit != "" || got.BBL != nil {
		t.Error("absent components must decode as absent")
	}
}

// Mismatched lengths are invalid but the codec is not the enforcement
// point: the raw lists round-trip unchanged and Valid flags the problem.
func TestScenarioInvalidStillRoundTrips(t *testing.T) {
	p := Profile{X: XNums([]float64{1, 2, 3, 4}), Y: []float64{1, 2, 3}}
	if p.Valid() {
		t.Fatal("fixture should be invalid")
	}
	enc, err := EncodeText(p)
	if err != nil {
		t.Fatal(err)
	}
	got := Decode(enc)
	if !got.Equal(p) {
		t.Errorf("invalid profile did not round-trip: got %+v, want %+v", got, p)
	}
	if got.Valid() {
		t.Error("round trip must preserve invalidity")
	}
}
