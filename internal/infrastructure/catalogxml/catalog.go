// Package catalogxml lee el catálogo de proveedores en XML (sedes, repuestos, proveedores y
// sus referencias) y lo convierte en entidades o en un script SQL de siembra idempotente.
//
// Formato esperado (se admite encoding ISO-8859-1):
//
//	<catalogo>
//	  <sedes><sede nombre="Bogotá"/></sedes>
//	  <repuestos><repuesto sku="FIL-001" descripcion="Filtro de aceite"/></repuestos>
//	  <proveedores>
//	    <proveedor codigo="ANDINOS" nombre="Repuestos Andinos" catalogo="https://...">
//	      <referencia codigo="AND-FIL" sku="FIL-001" url="https://..."/>
//	    </proveedor>
//	  </proveedores>
//	</catalogo>
package catalogxml

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Repuestos-api/internal/domain"
	"github.com/jhoicas/Repuestos-api/internal/domain/entity"
)

// namespace fija los IDs derivados: el mismo XML produce siempre los mismos UUID.
var namespace = uuid.MustParse("8f7a0c52-3b8e-4f55-9a55-5d2b9f0c7e10")

// Catalog contenido del XML ya validado.
type Catalog struct {
	Sites     []entity.Site
	Parts     []entity.Part
	Suppliers []entity.Supplier
	Refs      []entity.SupplierPartRef
}

// Seeder destino en memoria del catálogo (lo implementa memory.Store).
type Seeder interface {
	AddSite(entity.Site)
	AddPart(entity.Part)
	AddSupplier(entity.Supplier)
	AddSupplierPartRef(entity.SupplierPartRef)
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "UTF-8", "":
		return input, nil
	}
	return nil, fmt.Errorf("encoding %q no soportado", charset)
}

// ParseFile abre y parsea el archivo indicado.
func ParseFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir catálogo: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse lee el XML y valida que cada referencia apunte a un SKU declarado.
func Parse(r io.Reader) (*Catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	root := doc.SelectElement("catalogo")
	if root == nil {
		return nil, fmt.Errorf("falta el elemento <catalogo>: %w", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	cat := &Catalog{}

	seenSite := map[string]bool{}
	for i, el := range root.FindElements("./sedes/sede") {
		name := attr(el, "nombre")
		if name == "" {
			return nil, fmt.Errorf("sede #%d sin nombre: %w", i+1, domain.ErrInvalidInput)
		}
		if seenSite[name] {
			continue
		}
		seenSite[name] = true
		cat.Sites = append(cat.Sites, entity.Site{ID: deriveID("site", name), Name: name, CreatedAt: now})
	}

	partBySKU := map[string]string{}
	for i, el := range root.FindElements("./repuestos/repuesto") {
		sku, label := attr(el, "sku"), attr(el, "descripcion")
		if sku == "" || label == "" {
			return nil, fmt.Errorf("repuesto #%d sin sku o descripción: %w", i+1, domain.ErrInvalidInput)
		}
		if _, dup := partBySKU[sku]; dup {
			return nil, fmt.Errorf("sku %q repetido: %w", sku, domain.ErrDuplicate)
		}
		id := deriveID("part", sku)
		partBySKU[sku] = id
		cat.Parts = append(cat.Parts, entity.Part{ID: id, SKU: sku, Label: label, CreatedAt: now})
	}

	for i, el := range root.FindElements("./proveedores/proveedor") {
		code, name := attr(el, "codigo"), attr(el, "nombre")
		if code == "" || name == "" {
			return nil, fmt.Errorf("proveedor #%d sin código o nombre: %w", i+1, domain.ErrInvalidInput)
		}
		supplierID := deriveID("supplier", code)
		cat.Suppliers = append(cat.Suppliers, entity.Supplier{
			ID: supplierID, Name: name, CatalogURL: attr(el, "catalogo"), CreatedAt: now,
		})

		seenRef := map[string]bool{}
		for _, ref := range el.SelectElements("referencia") {
			refCode, sku := attr(ref, "codigo"), attr(ref, "sku")
			partID, ok := partBySKU[sku]
			if refCode == "" || !ok {
				return nil, fmt.Errorf("referencia %q de %s apunta a sku desconocido %q: %w",
					refCode, code, sku, domain.ErrInvalidInput)
			}
			if seenRef[refCode] {
				return nil, fmt.Errorf("referencia %q repetida en %s: %w", refCode, code, domain.ErrDuplicate)
			}
			seenRef[refCode] = true
			cat.Refs = append(cat.Refs, entity.SupplierPartRef{
				ID:          deriveID("ref", code+"/"+refCode),
				PartID:      partID,
				SupplierID:  supplierID,
				SupplierRef: refCode,
				ProductURL:  attr(ref, "url"),
				CreatedAt:   now,
			})
		}
	}
	return cat, nil
}

// LoadInto carga el catálogo en un almacén en memoria.
func (c *Catalog) LoadInto(s Seeder) {
	for _, site := range c.Sites {
		s.AddSite(site)
	}
	for _, p := range c.Parts {
		s.AddPart(p)
	}
	for _, sup := range c.Suppliers {
		s.AddSupplier(sup)
	}
	for _, ref := range c.Refs {
		s.AddSupplierPartRef(ref)
	}
}

func attr(el *etree.Element, key string) string {
	return strings.TrimSpace(el.SelectAttrValue(key, ""))
}

func deriveID(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}
