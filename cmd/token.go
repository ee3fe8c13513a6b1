package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	authutils "techscreen-backend/lib/utils/auth-utils"
	"techscreen-backend/models"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development JWT",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		userID, _ := cmd.Flags().GetString("user")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		token, err := authutils.GetToken(authutils.TokenConfig{
			Secret: conf.Auth.JWTSecret,
			Expire: time.Duration(conf.Auth.JWTExpireInSec) * time.Second,
		}, userID, name, models.UserRole(role))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().String("user", "dev", "Subject (user id)")
	tokenCmd.Flags().String("name", "Developer", "Display name")
	tokenCmd.Flags().String("role", string(models.UserRoleAdmin), "Role: admin or user")
}
