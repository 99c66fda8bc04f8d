// seed_catalog genera un script SQL idempotente para poblar sedes, repuestos, proveedores y
// referencias de proveedor a partir del catálogo XML (admite ISO-8859-1).
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml] [salida.sql]
// Por defecto lee catalogo.xml en el directorio actual y escribe
// internal/infrastructure/postgres/seeds/catalog.sql.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Repuestos-api/internal/infrastructure/catalogxml"
)

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "seeds", "catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	cat, err := catalogxml.ParseFile(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer catálogo: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := cat.WriteSQL(out); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d sedes, %d repuestos, %d proveedores, %d referencias\n",
		outPath, len(cat.Sites), len(cat.Parts), len(cat.Suppliers), len(cat.Refs))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
