package receiving_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/receiving"
)

func TestResolveLocation_ConocidaGanaSobreIndicada(t *testing.T) {
	loc, err := receiving.ResolveLocation("A-01", "B-07")
	require.NoError(t, err)
	assert.Equal(t, "A-01", loc)
}

func TestResolveLocation_SinConocidaUsaIndicada(t *testing.T) {
	loc, err := receiving.ResolveLocation("", " B-07 ")
	require.NoError(t, err)
	assert.Equal(t, "B-07", loc)
}

func TestResolveLocation_SinNingunaFalla(t *testing.T) {
	_, err := receiving.ResolveLocation("", "  ")
	assert.ErrorIs(t, err, domain.ErrLocationRequired)
}
