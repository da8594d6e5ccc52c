package block

import (
	"fmt"
	"slices"

	"github.com/fieldspec/speclib/grouping"
	"github.com/fieldspec/speclib/profile"
)

// Variant-map keys. The map form is the hand-off format towards storage
// layers that persist structured values.
const (
	vkX         = "x"
	vkXUnit     = "xUnit"
	vkYUnit     = "yUnit"
	vkBBL       = "bbl"
	vkFieldName = "fieldName"
	vkValues    = "values"
	vkMask      = "mask"
	vkFIDs      = "fids"
	vkPosX      = "pos_x"
	vkPosY      = "pos_y"
	vkCRS       = "crs"
	vkMeta      = "meta"
)

// ToVariantMap flattens the block into a plain map. Buffers are copied and
// Meta is deep-copied, so the result shares nothing with the block.
// Optional components (mask, positions, crs, meta) are omitted when absent.
func (b *Block) ToVariantMap() map[string]any {
	xs := make([]any, b.Setting.NBands())
	for i, v := range b.Setting.X() {
		if v.IsDate() {
			xs[i] = v.Date
		} else {
			xs[i] = v.Num
		}
	}
	m := map[string]any{
		vkX:         xs,
		vkFieldName: b.Setting.FieldName(),
		vkValues:    slices.Clone(b.Values),
		vkFIDs:      slices.Clone(b.FIDs),
	}
	if u := b.Setting.XUnit(); u != "" {
		m[vkXUnit] = u
	}
	if u := b.Setting.YUnit(); u != "" {
		m[vkYUnit] = u
	}
	if bbl := b.Setting.BBL(); bbl != nil {
		m[vkBBL] = slices.Clone(bbl)
	}
	if b.Mask != nil {
		m[vkMask] = slices.Clone(b.Mask)
	}
	if b.HasPositions() {
		m[vkPosX] = slices.Clone(b.PosX)
		m[vkPosY] = slices.Clone(b.PosY)
	}
	if b.CRS != "" {
		m[vkCRS] = b.CRS
	}
	if b.Meta != nil {
		m[vkMeta] = deepCopyMap(b.Meta)
	}
	return m
}

// FromVariantMap rebuilds a block from its variant-map form. Unlike the
// profile codec this is strict: a variant map is produced by this package,
// never by foreign files, so a malformed one is a programming error worth
// reporting.
func FromVariantMap(m map[string]any) (*Block, error) {
	sp := profile.Profile{}
	if v, ok := m[vkX]; ok {
		p, err := profile.DecodeStrict(map[string]any{vkX: v})
		if err != nil {
			return nil, fmt.Errorf("variant map: %w", err)
		}
		sp.X = p.X
	}
	if u, ok := m[vkXUnit].(string); ok {
		sp.XUnit = u
	}
	if u, ok := m[vkYUnit].(string); ok {
		sp.YUnit = u
	}
	if v, ok := m[vkBBL]; ok {
		p, err := profile.DecodeStrict(map[string]any{vkBBL: v})
		if err != nil {
			return nil, fmt.Errorf("variant map: %w", err)
		}
		sp.BBL = p.BBL
	}
	fieldName, _ := m[vkFieldName].(string)

	values, ok := m[vkValues].([]float64)
	if !ok {
		return nil, fmt.Errorf("variant map: missing or mistyped %q", vkValues)
	}
	fids, ok := m[vkFIDs].([]int64)
	if !ok {
		return nil, fmt.Errorf("variant map: missing or mistyped %q", vkFIDs)
	}
	nBands := len(sp.X)
	if nBands*len(fids) != len(values) {
		return nil, fmt.Errorf("variant map: %d values do not fill (%d, 1, %d)",
			len(values), nBands, len(fids))
	}
	// NewSetting needs a y of matching length to keep the defaulted axis
	// consistent; x is always explicit here so a placeholder is enough.
	sp.Y = make([]float64, nBands)
	b := &Block{
		Setting: grouping.NewSetting(sp, fieldName),
		Values:  slices.Clone(values),
		FIDs:    slices.Clone(fids),
	}
	if mask, ok := m[vkMask].([]bool); ok {
		if len(mask) != len(values) {
			return nil, fmt.Errorf("variant map: mask length %d != values length %d", len(mask), len(values))
		}
		b.Mask = slices.Clone(mask)
	}
	px, okX := m[vkPosX].([]float64)
	py, okY := m[vkPosY].([]float64)
	if okX != okY {
		return nil, fmt.Errorf("variant map: positions must carry both %q and %q", vkPosX, vkPosY)
	}
	if okX {
		if len(px) != len(fids) || len(py) != len(fids) {
			return nil, fmt.Errorf("variant map: position length != profile count")
		}
		b.PosX = slices.Clone(px)
		b.PosY = slices.Clone(py)
	}
	if crs, ok := m[vkCRS].(string); ok {
		b.CRS = crs
	}
	if meta, ok := m[vkMeta].(map[string]any); ok {
		b.Meta = deepCopyMap(meta)
	}
	return b, nil
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case []float64:
		return slices.Clone(t)
	case []int64:
		return slices.Clone(t)
	case []int:
		return slices.Clone(t)
	case []string:
		return slices.Clone(t)
	case []bool:
		return slices.Clone(t)
	default:
		return t
	}
}
