package xlsexport

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
)

type Provider interface {
	ExportFunnelReport(report analyticsapimodels.FunnelReport) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

const (
	sheetStages      = "Этапы"
	sheetSources     = "Источники"
	sheetGroups      = "Группы этапов"
	sheetConversions = "Конверсия"
	sheetPaths       = "Пути кандидатов"
)

var (
	outcomeHeaders    = []string{"Всего", "Прошли", "Не прошли", "В процессе", "Отказались", "Отменено"}
	conversionHeaders = []string{"С этапа", "На этап", "Переходов", "Успешно", "Конверсия, %"}
	pathHeaders       = []string{"Путь", "Кандидатов", "Доля, %"}
)

func (i impl) ExportFunnelReport(report analyticsapimodels.FunnelReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	// первый лист создается вместе с файлом
	if err := f.SetSheetName("Sheet1", sheetStages); err != nil {
		return nil, errors.Wrap(err, "ошибка создания листа в xlsx")
	}
	for _, sheet := range []string{sheetSources, sheetGroups, sheetConversions, sheetPaths} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, errors.Wrapf(err, "ошибка создания листа %s в xlsx", sheet)
		}
	}
	if err := writeOutcomeSheet(f, sheetStages, "Этап", report.Stages); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа этапов в xlsx")
	}
	if err := writeOutcomeSheet(f, sheetSources, "Источник", report.Sources); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа источников в xlsx")
	}
	if err := writeOutcomeSheet(f, sheetGroups, "Группа", report.Groups); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа групп в xlsx")
	}
	if err := writeConversionSheet(f, report.Conversions); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа конверсии в xlsx")
	}
	if err := writePathSheet(f, report.Paths); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования листа путей в xlsx")
	}
	return f.WriteToBuffer()
}

func writeOutcomeSheet(f *excelize.File, sheet, keyTitle string, list []analyticsapimodels.OutcomeResult) error {
	headers := append([]string{keyTitle}, outcomeHeaders...)
	row, err := writeHeader(f, sheet, 0, headers)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	if err = applyDataCellStyle(f, sheet, 1, row+1, len(headers), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		values := []interface{}{item.Key, item.Total, item.Passed, item.Failed, item.Pending, item.Declined, item.Cancelled}
		if err = writeRow(f, sheet, row, values); err != nil {
			return err
		}
	}
	return nil
}

func writeConversionSheet(f *excelize.File, list []analyticsapimodels.ConversionEdge) error {
	row, err := writeHeader(f, sheetConversions, 0, conversionHeaders)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	if err = applyDataCellStyle(f, sheetConversions, 1, row+1, len(conversionHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		values := []interface{}{item.FromStage, item.ToStage, item.Count, item.Passed, item.Rate}
		if err = writeRow(f, sheetConversions, row, values); err != nil {
			return err
		}
	}
	return nil
}

func writePathSheet(f *excelize.File, list []analyticsapimodels.FlowPath) error {
	row, err := writeHeader(f, sheetPaths, 0, pathHeaders)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return nil
	}
	if err = applyDataCellStyle(f, sheetPaths, 1, row+1, len(pathHeaders), row+len(list)); err != nil {
		return err
	}
	for _, item := range list {
		row++
		values := []interface{}{strings.Join(item.StageSequence, " → "), item.Count, item.Percentage}
		if err = writeRow(f, sheetPaths, row, values); err != nil {
			return err
		}
	}
	return nil
}
