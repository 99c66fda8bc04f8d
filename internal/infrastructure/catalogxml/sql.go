package catalogxml

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteSQL escribe un script de siembra que se puede ejecutar varias veces:
// sedes, repuestos y proveedores se actualizan; las referencias existentes no se tocan.
func (c *Catalog) WriteSQL(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("-- Catálogo de repuestos generado por seed_catalog\n")
	bw.WriteString("BEGIN;\n\n")

	if len(c.Sites) > 0 {
		bw.WriteString("-- 1. Sedes\n")
		for _, s := range c.Sites {
			fmt.Fprintf(bw, "INSERT INTO sites (id, name) VALUES ('%s', %s)\n", s.ID, quote(s.Name))
			bw.WriteString("ON CONFLICT (name) DO NOTHING;\n")
		}
		bw.WriteString("\n")
	}

	if len(c.Parts) > 0 {
		bw.WriteString("-- 2. Repuestos\n")
		for _, p := range c.Parts {
			fmt.Fprintf(bw, "INSERT INTO parts (id, sku, label) VALUES ('%s', %s, %s)\n", p.ID, quote(p.SKU), quote(p.Label))
			bw.WriteString("ON CONFLICT (sku) DO UPDATE SET label = EXCLUDED.label;\n")
		}
		bw.WriteString("\n")
	}

	if len(c.Suppliers) > 0 {
		bw.WriteString("-- 3. Proveedores\n")
		for _, s := range c.Suppliers {
			fmt.Fprintf(bw, "INSERT INTO suppliers (id, name, catalog_url) VALUES ('%s', %s, %s)\n",
				s.ID, quote(s.Name), quoteOrNull(s.CatalogURL))
			bw.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, catalog_url = EXCLUDED.catalog_url;\n")
		}
		bw.WriteString("\n")
	}

	if len(c.Refs) > 0 {
		bw.WriteString("-- 4. Referencias de proveedor (el repuesto se busca por SKU)\n")
		for _, r := range c.Refs {
			sku := ""
			for _, p := range c.Parts {
				if p.ID == r.PartID {
					sku = p.SKU
					break
				}
			}
			bw.WriteString("INSERT INTO supplier_part_refs (id, part_id, supplier_id, supplier_ref, product_url)\n")
			fmt.Fprintf(bw, "SELECT '%s', id, '%s', %s, %s FROM parts WHERE sku = %s\n",
				r.ID, r.SupplierID, quote(r.SupplierRef), quoteOrNull(r.ProductURL), quote(sku))
			bw.WriteString("ON CONFLICT (supplier_id, supplier_ref) DO NOTHING;\n")
		}
		bw.WriteString("\n")
	}

	bw.WriteString("COMMIT;\n")
	return bw.Flush()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteOrNull(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}
