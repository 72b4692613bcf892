package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	candidatestore "hr-pipeline-backend/lib/candidate/store"
	xlsexport "hr-pipeline-backend/lib/export/xls"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	stagehistorystore "hr-pipeline-backend/lib/stage-history/store"
	"hr-pipeline-backend/lib/utils/testdb"
	"hr-pipeline-backend/models"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
	dbmodels "hr-pipeline-backend/models/db"
)

func seed(t *testing.T, conn *gorm.DB, source models.CandidateSource, stages ...entry) string {
	t.Helper()
	id, err := candidatestore.NewInstance(conn).Create(dbmodels.Candidate{
		FirstName: "Мария",
		Source:    source,
	})
	require.NoError(t, err)
	store := stagehistorystore.NewInstance(conn)
	for n, e := range stages {
		rec := dbmodels.StageHistory{CandidateID: id, Stage: e.stage, Status: e.status}
		rec.CreatedAt = baseTime.Add(time.Duration(n) * time.Hour)
		_, err = store.Create(rec)
		require.NoError(t, err)
	}
	return id
}

func TestHandlerReport(t *testing.T) {
	conn := testdb.New(t)
	xlsexport.NewHandler()
	handler := NewInstance(conn, stagecatalog.Default(), xlsexport.Instance)

	seed(t, conn, models.CandidateSourceReferral,
		entry{stage: "Entry", status: models.HistoryStatusCompleted},
		entry{stage: "Interview", status: models.HistoryStatusCompleted},
		entry{stage: "final-selection", status: models.HistoryStatusCompleted},
		entry{stage: "offer-interview", status: models.HistoryStatusAccepted},
	)
	seed(t, conn, models.CandidateSourceJobBoard,
		entry{stage: "Entry", status: models.HistoryStatusCompleted},
		entry{stage: "Document-Screening", status: models.HistoryStatusRejected},
	)

	t.Run(`Stages catalog order check`, func(t *testing.T) {
		stages, err := handler.Stages()
		require.NoError(t, err)
		keys := []string{}
		for _, item := range stages {
			keys = append(keys, item.Key)
		}
		require.Equal(t, []string{"Entry", "Document-Screening", "Interview", "final-selection", "offer-interview"}, keys)
	})

	t.Run(`Groups last entry check`, func(t *testing.T) {
		groups, err := handler.Groups()
		require.NoError(t, err)
		require.Equal(t, []analyticsapimodels.OutcomeResult{
			{Key: "screening", Total: 1, Failed: 1},
			{Key: "offer", Total: 1, Passed: 1},
		}, groups)
	})

	t.Run(`Conversions catalog order check`, func(t *testing.T) {
		edges, err := handler.Conversions()
		require.NoError(t, err)
		require.Len(t, edges, 4)
		require.Equal(t, "Entry", edges[0].FromStage)
		require.Equal(t, "Document-Screening", edges[0].ToStage)
		require.Equal(t, "final-selection", edges[3].FromStage)
		require.Equal(t, 100.0, edges[3].Rate)
	})

	t.Run(`Paths limit check`, func(t *testing.T) {
		paths, err := handler.Paths(analyticsapimodels.PathFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, paths, 1)
		require.Equal(t, 50.0, paths[0].Percentage)
	})

	t.Run(`Report and export check`, func(t *testing.T) {
		report, err := handler.Report()
		require.NoError(t, err)
		require.Len(t, report.Sources, 2)
		require.Len(t, report.Paths, 2)

		buf, err := handler.ExportToXls()
		require.NoError(t, err)
		require.NotZero(t, buf.Len())
	})
}
