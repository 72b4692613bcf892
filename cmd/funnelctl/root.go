package main

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hr-pipeline-backend/config"
	"hr-pipeline-backend/initializers"
)

// commandContext ленивая инициализация сервисов: команды каталога и токена работают без базы
type commandContext struct {
	verbose  bool
	initOnce sync.Once
}

func (c *commandContext) ensureServices() {
	c.initOnce.Do(func() {
		if c.verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		config.InitConfig()
		initializers.InitDBConnection()
		initializers.InitSmtp()
		initializers.InitHandlers()
	})
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}
	root := &cobra.Command{
		Use:           "funnelctl",
		Short:         "Управление воронкой подбора: отчеты, каталог этапов, перевод кандидатов",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Подробный лог")

	root.AddCommand(newCatalogCommand())
	root.AddCommand(newReportCommand(ctx))
	root.AddCommand(newAdvanceCommand(ctx))
	root.AddCommand(newTokenCommand())
	return root
}
