package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steffenjoachim/my-shop/internal/apperr"
	"github.com/steffenjoachim/my-shop/internal/domain/catalog"
)

func variation(id int64, stock int, attrs map[string]string) catalog.Variation {
	v := catalog.Variation{ID: id, ProductID: 1, Stock: stock}
	for t, val := range attrs {
		v.Attributes = append(v.Attributes, catalog.AttributeValue{AttributeType: t, Value: val})
	}
	return v
}

func shirtVariations() []catalog.Variation {
	return []catalog.Variation{
		variation(10, 3, map[string]string{"Color": "Red", "Size": "M"}),
		variation(11, 0, map[string]string{"Color": "Red", "Size": "L"}),
		variation(12, 5, map[string]string{"Color": "Blue", "Size": "M"}),
	}
}

func TestResolveVariation_ExactMatch(t *testing.T) {
	v, err := ResolveVariation(shirtVariations(), map[string]string{"Color": "Red", "Size": "M"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), v.ID)
	assert.Equal(t, 3, v.Stock)
}

func TestResolveVariation_Normalizes(t *testing.T) {
	v, err := ResolveVariation(shirtVariations(), map[string]string{" color ": "RED", "SIZE": " l "})
	require.NoError(t, err)
	assert.Equal(t, int64(11), v.ID)
}

func TestResolveVariation_ResolvesRegardlessOfStock(t *testing.T) {
	// Stock is the ledger's concern; the matcher still resolves a
	// sold-out combination.
	v, err := ResolveVariation(shirtVariations(), map[string]string{"Color": "Red", "Size": "L"})
	require.NoError(t, err)
	assert.Equal(t, 0, v.Stock)
}

func TestResolveVariation_PartialSelectionFails(t *testing.T) {
	_, err := ResolveVariation(shirtVariations(), map[string]string{"Color": "Red"})
	assert.ErrorIs(t, err, apperr.ErrVariantNotFound)
}

func TestResolveVariation_SupersetSelectionFails(t *testing.T) {
	_, err := ResolveVariation(shirtVariations(), map[string]string{"Color": "Red", "Size": "M", "Material": "Cotton"})
	assert.ErrorIs(t, err, apperr.ErrVariantNotFound)
}

func TestResolveVariation_EmptySelectionFails(t *testing.T) {
	_, err := ResolveVariation(shirtVariations(), nil)
	assert.ErrorIs(t, err, apperr.ErrVariantNotFound)

	_, err = ResolveVariation(shirtVariations(), map[string]string{})
	assert.ErrorIs(t, err, apperr.ErrVariantNotFound)
}

func TestResolveVariation_UnknownCombinationFails(t *testing.T) {
	_, err := ResolveVariation(shirtVariations(), map[string]string{"Color": "Blue", "Size": "L"})
	assert.ErrorIs(t, err, apperr.ErrVariantNotFound)
}

func TestCheckDuplicateCombinations(t *testing.T) {
	err := checkDuplicateCombinations([]CreateVariationInput{
		{Attributes: map[string]string{"Color": "Red", "Size": "M"}, Stock: 1},
		{Attributes: map[string]string{"Color": "Red", "Size": "L"}, Stock: 1},
	})
	assert.NoError(t, err)

	err = checkDuplicateCombinations([]CreateVariationInput{
		{Attributes: map[string]string{"Color": "Red", "Size": "M"}, Stock: 1},
		{Attributes: map[string]string{"size": " m ", "COLOR": "red"}, Stock: 2},
	})
	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
}
