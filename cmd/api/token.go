package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Repuestos-api/pkg/jwt"
)

var (
	tokenUser string
	tokenRole string
	tokenExp  int
)

// tokenCmd emite un JWT de desarrollo; el login no forma parte de esta API.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Genera un token JWT de desarrollo para un usuario y rol",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		switch tokenRole {
		case jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleCompras:
		default:
			return fmt.Errorf("rol desconocido %q (admin | bodeguero | compras)", tokenRole)
		}
		if tokenUser == "" {
			return errors.New("--user es obligatorio")
		}
		exp := tokenExp
		if exp <= 0 {
			exp = cfg.JWT.Expiration
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, tokenUser, tokenRole, cfg.JWT.Issuer, exp)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenUser, "user", "u", "", "ID del usuario (claim user_id)")
	tokenCmd.Flags().StringVarP(&tokenRole, "role", "r", jwt.RoleBodeguero, "admin | bodeguero | compras")
	tokenCmd.Flags().IntVar(&tokenExp, "exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	rootCmd.AddCommand(tokenCmd)
}
