// Command api expone la API de recepción de repuestos.
//
// Uso:
//
//	api serve              # servidor HTTP (por defecto)
//	api migrate up|down|version
//	api token --user u1 --role admin
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
