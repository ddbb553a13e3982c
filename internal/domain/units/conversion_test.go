package units_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/units"
)

func TestConvert_Identidad(t *testing.T) {
	q := decimal.RequireFromString("123.456")
	got, err := units.Convert(q, "kg", "kg")
	require.NoError(t, err)
	assert.True(t, got.Equal(q), "convert(q,u,u) debe ser q idénticamente")
}

func TestConvert_PesoVolumenLongitud(t *testing.T) {
	cases := []struct {
		q        string
		from, to string
		want     string
	}{
		{"1", "kg", "g", "1000"},
		{"250", "g", "kg", "0.25"},
		{"1500", "mg", "g", "1.5"},
		{"2", "l", "ml", "2000"},
		{"35", "cl", "l", "0.35"},
		{"180", "cm", "m", "1.8"},
		{"0.5", "m", "mm", "500"},
	}
	for _, c := range cases {
		got, err := units.Convert(decimal.RequireFromString(c.q), c.from, c.to)
		require.NoError(t, err, "%s %s -> %s", c.q, c.from, c.to)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"%s %s -> %s: esperado %s, obtenido %s", c.q, c.from, c.to, c.want, got)
	}
}

// La ida y vuelta entre unidades de la misma familia debe devolver la
// cantidad original exacta: la aritmética es decimal, no flotante.
func TestConvert_RoundTripExacto(t *testing.T) {
	pairs := [][2]string{
		{"mg", "g"}, {"g", "kg"}, {"kg", "t"},
		{"ml", "cl"}, {"cl", "l"},
		{"mm", "cm"}, {"cm", "m"},
	}
	q := decimal.RequireFromString("7.125")
	for _, p := range pairs {
		there, err := units.Convert(q, p[0], p[1])
		require.NoError(t, err)
		back, err := units.Convert(there, p[1], p[0])
		require.NoError(t, err)
		assert.True(t, back.Equal(q), "round-trip %s<->%s: %s != %s", p[0], p[1], back, q)
	}
}

func TestConvert_ParesNoSoportados(t *testing.T) {
	// Entre familias (peso -> volumen) y unidades desconocidas: rechazo
	// explícito, nunca paso silencioso.
	_, err := units.Convert(decimal.NewFromInt(1), "kg", "l")
	assert.ErrorIs(t, err, domain.ErrConversionUnsupported)

	_, err = units.Convert(decimal.NewFromInt(1), "kg", "libra")
	assert.ErrorIs(t, err, domain.ErrConversionUnsupported)

	assert.False(t, units.IsSupported("kg", "l"))
	assert.False(t, units.IsSupported("caja", "g"))
	assert.True(t, units.IsSupported("mg", "t"))
	assert.True(t, units.IsSupported("caja", "caja"), "misma unidad siempre soportada")
}

func TestToBaseUnits_FamiliaYFactorPlano(t *testing.T) {
	peso := &entity.Product{
		Family:           entity.FamilyWeight,
		BaseUnit:         "g",
		PurchaseUnit:     "kg",
		PurchaseUnitSize: decimal.NewFromInt(1000),
		SellingUnit:      "g",
	}
	got, err := units.ToBaseUnits(peso, decimal.NewFromInt(2), "kg")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(2000)))

	// piece/pack: sin tabla de familia, manda el factor plano del producto
	caja := &entity.Product{
		Family:               entity.FamilyPack,
		BaseUnit:             "unit",
		PurchaseUnit:         "caja",
		PurchaseUnitSize:     decimal.NewFromInt(24),
		SellingUnit:          "unit",
		UnitConversionFactor: decimal.NewFromInt(24),
	}
	got, err = units.ToBaseUnits(caja, decimal.NewFromInt(3), "caja")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(72)))

	back, err := units.FromBaseUnits(caja, got, "caja")
	require.NoError(t, err)
	assert.True(t, back.Equal(decimal.NewFromInt(3)))

	// unidad desconocida y sin factor: rechazo
	sinFactor := &entity.Product{Family: entity.FamilyPiece, BaseUnit: "unit"}
	_, err = units.ToBaseUnits(sinFactor, decimal.NewFromInt(1), "docena")
	assert.ErrorIs(t, err, domain.ErrConversionUnsupported)
}
