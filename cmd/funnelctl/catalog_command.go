package main

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Каталог этапов подбора",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "validate [file]",
		Short: "Проверить файл каталога этапов, без аргумента - встроенный каталог",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			catalog, err := stagecatalog.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCatalog(catalog))
			fmt.Fprintf(cmd.OutOrStdout(), "Каталог корректен: этапов %d\n", len(catalog.Stages()))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "templates <stage> [file]",
		Short: "Шаблоны задач этапа",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			catalog, err := stagecatalog.Load(path)
			if err != nil {
				return err
			}
			if !catalog.IsStage(args[0]) {
				return errors.Errorf("этап %q отсутствует в каталоге", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTemplates(catalog.ListTemplates(args[0])))
			return nil
		},
	})
	return cmd
}

func renderCatalog(catalog stagecatalog.Provider) string {
	rows := make([][]string, 0, len(catalog.Stages()))
	for _, stage := range catalog.Stages() {
		group := stage.Group
		if group == "" {
			group = "-"
		}
		rows = append(rows, []string{
			strconv.Itoa(stage.Order + 1),
			stage.Name,
			group,
			strconv.Itoa(len(stage.Templates)),
		})
	}
	return renderTable("Этапы подбора",
		[]column{numColumn("№"), textColumn("Этап"), textColumn("Группа"), numColumn("Задач")},
		rows,
	)
}

func renderTemplates(list []stagecatalog.TaskTemplate) string {
	rows := make([][]string, 0, len(list))
	for _, tpl := range list {
		due := "-"
		if tpl.DueOffsetDays != nil {
			due = strconv.Itoa(*tpl.DueOffsetDays)
		}
		required := "нет"
		if tpl.IsRequired {
			required = "да"
		}
		rows = append(rows, []string{
			tpl.Title,
			string(tpl.Kind),
			string(tpl.Schedule),
			strconv.Itoa(tpl.Priority),
			due,
			required,
		})
	}
	return renderTable("",
		[]column{
			textColumn("Задача"), textColumn("Тип"), textColumn("Срок"),
			numColumn("Приоритет"), numColumn("Дней"), textColumn("Обязательная"),
		},
		rows,
	)
}
