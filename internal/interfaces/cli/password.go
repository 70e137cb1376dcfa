package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Costbook-api/internal/application/auth"
)

// NewHashPasswordCommand imprime el hash bcrypt para OWNER_PASSWORD_HASH.
func NewHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Generar el valor de OWNER_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
