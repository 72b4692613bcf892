package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// column колонка отчета: числовые колонки выравниваются вправо
type column struct {
	title   string
	numeric bool
}

func textColumn(title string) column {
	return column{title: title}
}

func numColumn(title string) column {
	return column{title: title, numeric: true}
}

// renderTable таблица отчета для терминала, заголовки выводятся как есть (кириллица не переводится в верхний регистр)
func renderTable(title string, columns []column, rows [][]string) string {
	if len(columns) == 0 {
		return ""
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	if title != "" {
		tw.SetTitle("%s", title)
	}

	header := make(table.Row, 0, len(columns))
	configs := make([]table.ColumnConfig, 0, len(columns))
	for k, col := range columns {
		header = append(header, col.title)
		align := text.AlignLeft
		if col.numeric {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{Number: k + 1, Align: align, AlignHeader: text.AlignLeft})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range rows {
		r := make(table.Row, len(columns))
		for k := range r {
			if k < len(row) {
				r[k] = row[k]
			}
		}
		tw.AppendRow(r)
	}
	if len(rows) == 0 {
		tw.AppendFooter(table.Row{"нет данных"})
	}
	return tw.Render()
}
