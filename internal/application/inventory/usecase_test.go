package inventory_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/inventory"
	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
)

func newInventory() *inventory.InventoryUseCase {
	st := memory.New()
	return inventory.NewInventoryUseCase(st.Repos(), st, zerolog.Nop())
}

func TestUpsert_CreaYSuma(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	in := inventory.UpsertInput{Site: "Bogotá", PartID: "p-1", Condition: entity.ConditionNew, Qty: 3, Location: "A-01"}

	rec, err := uc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.QtyOnHand)

	in.Qty, in.Location = 2, "B-02"
	rec, err = uc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 5, rec.QtyOnHand)
	assert.Equal(t, "A-01", rec.Location)
}

func TestUpsert_UbicacionNulaSeCompletaUnaVez(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	in := inventory.UpsertInput{Site: "Bogotá", PartID: "p-1", Condition: entity.ConditionUsed, Qty: 1}

	rec, err := uc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Empty(t, rec.Location)

	in.Location = "C-03"
	rec, err = uc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "C-03", rec.Location)

	in.Location = "D-04"
	rec, err = uc.Upsert(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "C-03", rec.Location)
}

func TestUpsert_EntradasInvalidas(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	_, err := uc.Upsert(ctx, inventory.UpsertInput{Site: "Bogotá", PartID: "p-1", Condition: entity.ConditionNew, Qty: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = uc.Upsert(ctx, inventory.UpsertInput{Site: "Bogotá", PartID: "p-1", Condition: "scrap", Qty: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_Filtros(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()
	for _, in := range []inventory.UpsertInput{
		{Site: "Bogotá", PartID: "p-1", Condition: entity.ConditionNew, Qty: 1, Location: "A"},
		{Site: "Bogotá", PartID: "p-1", Condition: entity.ConditionUsed, Qty: 2, Location: "A"},
		{Site: "Bogotá", PartID: "p-2", Condition: entity.ConditionNew, Qty: 3, Location: "B"},
		{Site: "Medellín", PartID: "p-1", Condition: entity.ConditionNew, Qty: 4, Location: "M"},
	} {
		_, err := uc.Upsert(ctx, in)
		require.NoError(t, err)
	}

	cases := []struct {
		name string
		q    dto.InventoryQuery
		want int
	}{
		{"sin filtros", dto.InventoryQuery{}, 4},
		{"por sede", dto.InventoryQuery{Site: "Bogotá"}, 3},
		{"por repuesto", dto.InventoryQuery{PartID: "p-1"}, 3},
		{"por condición", dto.InventoryQuery{Condition: "new"}, 3},
		{"combinado", dto.InventoryQuery{Site: "Bogotá", PartID: "p-1", Condition: "used"}, 1},
		{"paginado", dto.InventoryQuery{PageRequest: dto.PageRequest{Limit: 2, Offset: 3}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := uc.List(ctx, tc.q)
			require.NoError(t, err)
			assert.Len(t, out.Items, tc.want)
		})
	}

	_, err := uc.List(ctx, dto.InventoryQuery{Condition: "broken"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestKnownLocation(t *testing.T) {
	uc := newInventory()
	ctx := context.Background()

	loc, err := uc.KnownLocation(ctx, "Bogotá", "p-1")
	require.NoError(t, err)
	assert.False(t, loc.Known)

	_, err = uc.Upsert(ctx, inventory.UpsertInput{Site: "Bogotá", PartID: "p-1", Condition: entity.ConditionRefurbished, Qty: 1, Location: "R-2"})
	require.NoError(t, err)

	loc, err = uc.KnownLocation(ctx, "Bogotá", "p-1")
	require.NoError(t, err)
	assert.True(t, loc.Known)
	assert.Equal(t, "R-2", loc.Location)

	_, err = uc.KnownLocation(ctx, "", "p-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
