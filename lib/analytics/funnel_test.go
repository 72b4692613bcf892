package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hr-pipeline-backend/models"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
	dbmodels "hr-pipeline-backend/models/db"
)

var baseTime = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

type entry struct {
	candidate string
	stage     string
	status    models.HistoryStatus
}

// buildHistory записи одного кандидата идут с шагом в час в порядке перечисления
func buildHistory(entries ...entry) []dbmodels.StageHistory {
	result := make([]dbmodels.StageHistory, 0, len(entries))
	seen := map[string]int{}
	for n, e := range entries {
		step := seen[e.candidate]
		seen[e.candidate]++
		rec := dbmodels.StageHistory{
			CandidateID: e.candidate,
			Stage:       e.stage,
			Status:      e.status,
		}
		rec.ID = fmt.Sprintf("h%d", n)
		rec.CreatedAt = baseTime.Add(time.Duration(step) * time.Hour)
		result = append(result, rec)
	}
	return result
}

func findResult(list []analyticsapimodels.OutcomeResult, key string) *analyticsapimodels.OutcomeResult {
	for k := range list {
		if list[k].Key == key {
			return &list[k]
		}
	}
	return nil
}

func TestStageResults(t *testing.T) {
	history := buildHistory(
		entry{"c1", "Entry", models.HistoryStatusPassed},
		entry{"c1", "Interview", models.HistoryStatusPending},
		entry{"c2", "Entry", models.HistoryStatusWithdrawn},
		entry{"c3", "Entry", models.HistoryStatusCompleted},
		entry{"c3", "final-selection", models.HistoryStatusCompleted},
		entry{"c3", "Onboarding", models.HistoryStatusCancelled},
	)

	t.Run(`idempotency check`, func(t *testing.T) {
		require.Equal(t, StageResults(history), StageResults(history))
	})

	t.Run(`empty stages check`, func(t *testing.T) {
		result := StageResults(history)
		require.Len(t, result, 4)
		require.Nil(t, findResult(result, "Aptitude-Test"))
		require.Empty(t, StageResults(nil))
	})

	t.Run(`outcome classification check`, func(t *testing.T) {
		result := StageResults(history)
		require.Equal(t, analyticsapimodels.OutcomeResult{Key: "Entry", Total: 3, Passed: 1, Pending: 1, Declined: 1}, *findResult(result, "Entry"))
		require.Equal(t, analyticsapimodels.OutcomeResult{Key: "final-selection", Total: 1, Passed: 1}, *findResult(result, "final-selection"))
		require.Equal(t, analyticsapimodels.OutcomeResult{Key: "Onboarding", Total: 1, Cancelled: 1}, *findResult(result, "Onboarding"))
	})

	t.Run(`malformed records check`, func(t *testing.T) {
		broken := append(buildHistory(
			entry{"", "Entry", models.HistoryStatusPassed},
			entry{"c9", "", models.HistoryStatusPassed},
			entry{"c9", "Entry", "lost"},
		), history...)
		require.Equal(t, StageResults(history), StageResults(broken))
	})
}

func TestSourceAndStageAsymmetry(t *testing.T) {
	history := buildHistory(
		entry{"c1", "Entry", models.HistoryStatusPassed},
		entry{"c1", "Interview", models.HistoryStatusPending},
	)
	sources := map[string]models.CandidateSource{"c1": models.CandidateSourceReferral}

	stages := StageResults(history)
	require.Equal(t, 1, findResult(stages, "Entry").Passed)
	require.Equal(t, 1, findResult(stages, "Interview").Pending)

	bySource := SourceResults(history, sources)
	require.Equal(t, []analyticsapimodels.OutcomeResult{
		{Key: string(models.CandidateSourceReferral), Total: 1, Pending: 1},
	}, bySource)
}

func TestSourceResults(t *testing.T) {
	history := buildHistory(
		entry{"c1", "Entry", models.HistoryStatusFailed},
		entry{"c2", "Entry", models.HistoryStatusPassed},
		entry{"c3", "Entry", models.HistoryStatusPassed},
		entry{"c4", "Entry", models.HistoryStatusPassed},
	)
	sources := map[string]models.CandidateSource{
		"c1": models.CandidateSourceJobBoard,
		"c2": models.CandidateSourceJobBoard,
		"c3": models.CandidateSourceEvent,
	}
	result := SourceResults(history, sources)
	require.Equal(t, []analyticsapimodels.OutcomeResult{
		{Key: "event", Total: 1, Passed: 1},
		{Key: "job-board", Total: 2, Passed: 1, Failed: 1},
	}, result)
}

func TestGroupResults(t *testing.T) {
	history := buildHistory(
		entry{"c1", "Entry", models.HistoryStatusCompleted},
		entry{"c1", "Interview", models.HistoryStatusNoShow},
		entry{"c2", "Entry", models.HistoryStatusScheduled},
		entry{"c3", "Unmapped", models.HistoryStatusPassed},
	)
	groups := map[string]string{"Entry": "screening", "Interview": "interview"}
	result := GroupResults(history, groups)
	require.Equal(t, []analyticsapimodels.OutcomeResult{
		{Key: "interview", Total: 1, Failed: 1},
		{Key: "screening", Total: 1, Pending: 1},
	}, result)
}

func TestConversionRates(t *testing.T) {
	t.Run(`conversion rate check`, func(t *testing.T) {
		entries := []entry{}
		for n := 0; n < 10; n++ {
			candidate := fmt.Sprintf("c%d", n)
			status := models.HistoryStatusPassed
			if n >= 7 {
				status = models.HistoryStatusFailed
			}
			entries = append(entries,
				entry{candidate, "X", models.HistoryStatusCompleted},
				entry{candidate, "Y", status},
			)
		}
		result := ConversionRates(buildHistory(entries...))
		require.Equal(t, []analyticsapimodels.ConversionEdge{
			{FromStage: "X", ToStage: "Y", Passed: 7, Count: 10, Rate: 70.0},
		}, result)
	})

	t.Run(`conversion denominator check`, func(t *testing.T) {
		history := buildHistory(
			entry{"c1", "X", models.HistoryStatusCompleted},
			entry{"c1", "Y", models.HistoryStatusPassed},
			entry{"c2", "X", models.HistoryStatusCompleted},
			entry{"c2", "Z", models.HistoryStatusPassed},
			entry{"c3", "X", models.HistoryStatusCompleted},
			entry{"c3", "Z", models.HistoryStatusPending},
		)
		result := ConversionRates(history)
		require.Len(t, result, 2)
		require.Equal(t, 33.3, result[0].Rate)
		require.Equal(t, "Y", result[0].ToStage)
		require.Equal(t, 33.3, result[1].Rate)
		require.Equal(t, 2, result[1].Count)
	})

	t.Run(`time order check`, func(t *testing.T) {
		history := buildHistory(
			entry{"c1", "X", models.HistoryStatusCompleted},
			entry{"c1", "Y", models.HistoryStatusPassed},
		)
		history[0], history[1] = history[1], history[0]
		result := ConversionRates(history)
		require.Len(t, result, 1)
		require.Equal(t, "X", result[0].FromStage)
		require.Equal(t, 100.0, result[0].Rate)
	})

	t.Run(`single entry check`, func(t *testing.T) {
		require.Empty(t, ConversionRates(buildHistory(entry{"c1", "X", models.HistoryStatusPassed})))
	})
}

func TestFlowPaths(t *testing.T) {
	history := buildHistory(
		entry{"c1", "Entry", models.HistoryStatusCompleted},
		entry{"c1", "Interview", models.HistoryStatusPassed},
		entry{"c2", "Entry", models.HistoryStatusCompleted},
		entry{"c2", "Entry", models.HistoryStatusCompleted},
		entry{"c2", "Interview", models.HistoryStatusFailed},
		entry{"c3", "Entry", models.HistoryStatusWithdrawn},
		entry{"c4", "Entry", models.HistoryStatusCompleted},
		entry{"c4", "Interview", models.HistoryStatusCompleted},
		entry{"c4", "Entry", models.HistoryStatusPending},
	)
	result := FlowPaths(history)
	require.Equal(t, []analyticsapimodels.FlowPath{
		{StageSequence: []string{"Entry", "Interview"}, Count: 2, Percentage: 50.0},
		{StageSequence: []string{"Entry"}, Count: 1, Percentage: 25.0},
		{StageSequence: []string{"Entry", "Interview", "Entry"}, Count: 1, Percentage: 25.0},
	}, result)

	require.Equal(t, result, FlowPaths(history))
	require.Empty(t, FlowPaths(nil))
}

func TestPercent(t *testing.T) {
	require.Equal(t, 0.0, percent(1, 0))
	require.Equal(t, 66.7, percent(2, 3))
	require.Equal(t, 100.0, percent(4, 4))
}
