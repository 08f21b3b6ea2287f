package products

import (
	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/catalog"
)

// ResolveVariation resolves a requested attribute selection to exactly
// one variation of a product. Both sides are normalized (trimmed,
// lower-cased) and must match exactly: same attribute axes, same values.
// Partial selections never match; an empty selection never resolves,
// because every variation must be fully disambiguated.
func ResolveVariation(variations []catalog.Variation, selected map[string]string) (catalog.Variation, error) {
	if len(selected) == 0 {
		return catalog.Variation{}, apperr.ErrVariantNotFound
	}
	want := catalog.NormalizeSelection(selected)
	for _, v := range variations {
		if attrSetsEqual(v.AttributeSet(), want) {
			return v, nil
		}
	}
	return catalog.Variation{}, apperr.ErrVariantNotFound
}

func attrSetsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
