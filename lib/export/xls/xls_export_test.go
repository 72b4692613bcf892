package xlsexport

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
)

func TestExportFunnelReport(t *testing.T) {
	report := analyticsapimodels.FunnelReport{
		Stages: []analyticsapimodels.OutcomeResult{
			{Key: "Entry", Total: 3, Passed: 2, Pending: 1},
			{Key: "Interview", Total: 1, Failed: 1},
		},
		Sources: []analyticsapimodels.OutcomeResult{{Key: "referral", Total: 2, Passed: 2}},
		Conversions: []analyticsapimodels.ConversionEdge{
			{FromStage: "Entry", ToStage: "Interview", Count: 10, Passed: 7, Rate: 70},
		},
		Paths: []analyticsapimodels.FlowPath{
			{StageSequence: []string{"Entry", "Interview"}, Count: 3, Percentage: 75},
		},
	}
	buf, err := impl{}.ExportFunnelReport(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{sheetStages, sheetSources, sheetGroups, sheetConversions, sheetPaths}, f.GetSheetList())

	rows, err := f.GetRows(sheetStages)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Этап", rows[0][0])
	require.Equal(t, []string{"Entry", "3", "2", "0", "1", "0", "0"}, rows[1])

	rows, err = f.GetRows(sheetGroups)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = f.GetRows(sheetConversions)
	require.NoError(t, err)
	require.Equal(t, []string{"Entry", "Interview", "10", "7", "70"}, rows[1])

	rows, err = f.GetRows(sheetPaths)
	require.NoError(t, err)
	require.Equal(t, "Entry → Interview", rows[1][0])
	require.Equal(t, "3", rows[1][1])
}
