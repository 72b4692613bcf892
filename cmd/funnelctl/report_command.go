package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hr-pipeline-backend/lib/analytics"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Отчеты по воронке подбора",
	}
	cmd.AddCommand(newOutcomeReportCommand(ctx, "stages", "Этап", "Исходы по этапам", func() ([]analyticsapimodels.OutcomeResult, error) {
		return analytics.Instance.Stages()
	}))
	cmd.AddCommand(newOutcomeReportCommand(ctx, "sources", "Источник", "Исходы по источникам кандидатов", func() ([]analyticsapimodels.OutcomeResult, error) {
		return analytics.Instance.Sources()
	}))
	cmd.AddCommand(newOutcomeReportCommand(ctx, "groups", "Группа", "Исходы по группам этапов", func() ([]analyticsapimodels.OutcomeResult, error) {
		return analytics.Instance.Groups()
	}))
	cmd.AddCommand(&cobra.Command{
		Use:   "conversions",
		Short: "Конверсия переходов между этапами",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.ensureServices()
			list, err := analytics.Instance.Conversions()
			if err != nil {
				return errors.Wrap(err, "ошибка расчета конверсии")
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderConversions(list))
			return nil
		},
	})

	var limit int
	pathsCmd := &cobra.Command{
		Use:   "paths",
		Short: "Частые пути кандидатов по этапам",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.ensureServices()
			list, err := analytics.Instance.Paths(analyticsapimodels.PathFilter{Limit: limit})
			if err != nil {
				return errors.Wrap(err, "ошибка расчета путей кандидатов")
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPaths(list))
			return nil
		},
	}
	pathsCmd.Flags().IntVarP(&limit, "limit", "n", 10, "Количество путей, 0 - все")
	cmd.AddCommand(pathsCmd)

	var output string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Выгрузить полный отчет в xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.ensureServices()
			buf, err := analytics.Instance.ExportToXls()
			if err != nil {
				return errors.Wrap(err, "ошибка выгрузки отчета")
			}
			if err = os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return errors.Wrapf(err, "ошибка записи файла %s", output)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Отчет сохранен в %s\n", output)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&output, "out", "o", "funnel_report.xlsx", "Файл отчета")
	cmd.AddCommand(exportCmd)
	return cmd
}

func newOutcomeReportCommand(ctx *commandContext, use, keyTitle, short string,
	load func() ([]analyticsapimodels.OutcomeResult, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.ensureServices()
			list, err := load()
			if err != nil {
				return errors.Wrapf(err, "ошибка формирования отчета %s", use)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderOutcomes(keyTitle, list))
			return nil
		},
	}
}

func renderOutcomes(keyTitle string, list []analyticsapimodels.OutcomeResult) string {
	rows := make([][]string, 0, len(list))
	for _, item := range list {
		rows = append(rows, []string{
			item.Key,
			strconv.Itoa(item.Total),
			strconv.Itoa(item.Passed),
			strconv.Itoa(item.Failed),
			strconv.Itoa(item.Pending),
			strconv.Itoa(item.Declined),
			strconv.Itoa(item.Cancelled),
		})
	}
	return renderTable("",
		[]column{
			textColumn(keyTitle), numColumn("Всего"), numColumn("Прошли"), numColumn("Не прошли"),
			numColumn("В процессе"), numColumn("Отказались"), numColumn("Отменено"),
		},
		rows,
	)
}

func renderConversions(list []analyticsapimodels.ConversionEdge) string {
	rows := make([][]string, 0, len(list))
	for _, item := range list {
		rows = append(rows, []string{
			item.FromStage,
			item.ToStage,
			strconv.Itoa(item.Count),
			strconv.Itoa(item.Passed),
			formatPercent(item.Rate),
		})
	}
	return renderTable("Конверсия переходов",
		[]column{textColumn("С этапа"), textColumn("На этап"), numColumn("Переходов"), numColumn("Успешно"), numColumn("Конверсия, %")},
		rows,
	)
}

func renderPaths(list []analyticsapimodels.FlowPath) string {
	rows := make([][]string, 0, len(list))
	for _, item := range list {
		rows = append(rows, []string{
			strings.Join(item.StageSequence, " > "),
			strconv.Itoa(item.Count),
			formatPercent(item.Percentage),
		})
	}
	return renderTable("Пути кандидатов",
		[]column{textColumn("Путь"), numColumn("Кандидатов"), numColumn("Доля, %")},
		rows,
	)
}

func formatPercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
