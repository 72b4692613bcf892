package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hr-pipeline-backend/config"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
)

func newTokenCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Выпустить токен доступа к api",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.InitConfig()
			if config.Conf.Auth.JWTSecret == "" {
				return errors.New("не задан JWT_SECRET")
			}
			ttl := time.Duration(config.Conf.Auth.JWTExpireInSec) * time.Second
			token, err := authutils.GetToken(config.Conf.Auth.JWTSecret, args[0], name, ttl)
			if err != nil {
				return errors.Wrap(err, "ошибка выпуска токена")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Имя пользователя в токене")
	return cmd
}
