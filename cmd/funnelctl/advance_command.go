package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hr-pipeline-backend/lib/pipeline"
)

func newAdvanceCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <candidate-id> <stage>",
		Short: "Перевести кандидата на этап",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx.ensureServices()
			result, err := pipeline.Instance.Advance(context.Background(), args[0], args[1])
			if err != nil {
				return errors.Wrap(err, "кандидат не переведен")
			}
			// письма отправляются после фиксации перевода, процесс не должен завершиться раньше
			pipeline.WaitNotifications()

			out := cmd.OutOrStdout()
			previous := result.PreviousStage
			if previous == "" {
				previous = "-"
			}
			fmt.Fprintf(out, "Кандидат %s: %s -> %s\n", args[0], previous, result.History.Stage)
			rows := make([][]string, 0, len(result.Tasks))
			for _, task := range result.Tasks {
				due := "-"
				if task.DueDate != nil {
					due = task.DueDate.Format("2006-01-02")
				}
				rows = append(rows, []string{task.Title, string(task.Kind), strconv.Itoa(task.Priority), due})
			}
			fmt.Fprintln(out, renderTable("Задачи этапа "+result.History.Stage,
				[]column{textColumn("Задача"), textColumn("Тип"), numColumn("Приоритет"), textColumn("Срок")},
				rows,
			))
			return nil
		},
	}
}
