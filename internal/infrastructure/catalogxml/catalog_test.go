package catalogxml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/catalogxml"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<catalogo>
  <sedes>
    <sede nombre="Bogotá"/>
    <sede nombre="Medellín"/>
    <sede nombre="Bogotá"/>
  </sedes>
  <repuestos>
    <repuesto sku="FIL-001" descripcion="Filtro de aceite"/>
    <repuesto sku="BUJ-002" descripcion="Bujía O'Neil"/>
  </repuestos>
  <proveedores>
    <proveedor codigo="ANDINOS" nombre="Repuestos Andinos" catalogo="https://andinos.example/catalogo">
      <referencia codigo="AND-FIL" sku="FIL-001"/>
      <referencia codigo="AND-BUJ" sku="BUJ-002" url="https://andinos.example/p/buj"/>
    </proveedor>
  </proveedores>
</catalogo>`

type seederSpy struct {
	sites, parts, suppliers, refs int
}

func (s *seederSpy) AddSite(entity.Site)                       { s.sites++ }
func (s *seederSpy) AddPart(entity.Part)                       { s.parts++ }
func (s *seederSpy) AddSupplier(entity.Supplier)               { s.suppliers++ }
func (s *seederSpy) AddSupplierPartRef(entity.SupplierPartRef) { s.refs++ }

func TestParse_CatalogoCompleto(t *testing.T) {
	cat, err := catalogxml.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, cat.Sites, 2, "las sedes repetidas se ignoran")
	assert.Equal(t, "Bogotá", cat.Sites[0].Name)
	require.Len(t, cat.Parts, 2)
	require.Len(t, cat.Suppliers, 1)
	assert.Equal(t, "https://andinos.example/catalogo", cat.Suppliers[0].CatalogURL)
	require.Len(t, cat.Refs, 2)
	assert.Equal(t, cat.Parts[1].ID, cat.Refs[1].PartID)
	assert.Equal(t, cat.Suppliers[0].ID, cat.Refs[1].SupplierID)
	assert.Equal(t, "https://andinos.example/p/buj", cat.Refs[1].ProductURL)
}

func TestParse_IDsDeterministas(t *testing.T) {
	a, err := catalogxml.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	b, err := catalogxml.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, a.Parts[0].ID, b.Parts[0].ID)
	assert.Equal(t, a.Suppliers[0].ID, b.Suppliers[0].ID)
	assert.Equal(t, a.Refs[0].ID, b.Refs[0].ID)
	assert.NotEqual(t, a.Parts[0].ID, a.Parts[1].ID)
}

func TestParse_ISO88591(t *testing.T) {
	// "Bogotá" codificado en Latin-1 (0xE1 = á).
	raw := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n<catalogo><sedes><sede nombre=\"Bogot\xe1\"/></sedes></catalogo>")
	cat, err := catalogxml.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, cat.Sites, 1)
	assert.Equal(t, "Bogotá", cat.Sites[0].Name)
}

func TestParse_Errores(t *testing.T) {
	cases := []struct {
		name string
		xml  string
		want error
	}{
		{"sin raíz", `<otro/>`, domain.ErrInvalidInput},
		{"sku repetido", `<catalogo><repuestos><repuesto sku="A" descripcion="x"/><repuesto sku="A" descripcion="y"/></repuestos></catalogo>`, domain.ErrDuplicate},
		{"referencia a sku desconocido", `<catalogo><proveedores><proveedor codigo="P" nombre="P"><referencia codigo="R" sku="NO"/></proveedor></proveedores></catalogo>`, domain.ErrInvalidInput},
		{"proveedor sin nombre", `<catalogo><proveedores><proveedor codigo="P"/></proveedores></catalogo>`, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalogxml.Parse(strings.NewReader(tc.xml))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoadInto(t *testing.T) {
	cat, err := catalogxml.Parse(strings.NewReader(sample))
	require.NoError(t, err)
	spy := &seederSpy{}
	cat.LoadInto(spy)
	assert.Equal(t, seederSpy{sites: 2, parts: 2, suppliers: 1, refs: 2}, *spy)
}

func TestWriteSQL(t *testing.T) {
	cat, err := catalogxml.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, cat.WriteSQL(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "-- Catálogo"))
	assert.Contains(t, out, "ON CONFLICT (sku) DO UPDATE")
	assert.Contains(t, out, "'Bujía O''Neil'")
	assert.Contains(t, out, "FROM parts WHERE sku = 'BUJ-002'")
	assert.Contains(t, out, "ON CONFLICT (supplier_id, supplier_ref) DO NOTHING")
	assert.True(t, strings.HasSuffix(out, "COMMIT;\n"))
}
