package funnelworker

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hr-pipeline-backend/lib/analytics"
	baseworker "hr-pipeline-backend/lib/utils/base-worker"
	"hr-pipeline-backend/lib/utils/metrics"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
)

type reportsMock struct {
	analytics.Provider
	mock.Mock
}

func (m *reportsMock) Stages() ([]analyticsapimodels.OutcomeResult, error) {
	args := m.Called()
	list, _ := args.Get(0).([]analyticsapimodels.OutcomeResult)
	return list, args.Error(1)
}

func TestHandle(t *testing.T) {
	t.Run(`funnel gauge check`, func(t *testing.T) {
		reports := &reportsMock{}
		reports.On("Stages").Return([]analyticsapimodels.OutcomeResult{
			{Key: "Entry", Total: 4, Passed: 2, Failed: 1, Pending: 1},
			{Key: "Interview", Total: 1, Declined: 1},
		}, nil).Once()
		reports.On("Stages").Return([]analyticsapimodels.OutcomeResult{
			{Key: "Interview", Total: 1, Passed: 1},
		}, nil).Once()
		i := impl{BaseImpl: *baseworker.NewInstance("test", 0, 0), reports: reports}

		require.NoError(t, i.handle(context.Background()))
		require.Equal(t, 2.0, testutil.ToFloat64(metrics.FunnelOutcomes.WithLabelValues("Entry", "passed")))
		require.Equal(t, 1.0, testutil.ToFloat64(metrics.FunnelOutcomes.WithLabelValues("Entry", "pending")))
		require.Equal(t, 1.0, testutil.ToFloat64(metrics.FunnelOutcomes.WithLabelValues("Interview", "declined")))

		require.NoError(t, i.handle(context.Background()))
		// Entry больше нет в отчете: 5 серий одного этапа
		require.Equal(t, 5, testutil.CollectAndCount(metrics.FunnelOutcomes))
		require.Equal(t, 1.0, testutil.ToFloat64(metrics.FunnelOutcomes.WithLabelValues("Interview", "passed")))
		reports.AssertExpectations(t)
	})

	t.Run(`report error check`, func(t *testing.T) {
		reports := &reportsMock{}
		reports.On("Stages").Return(nil, errors.New("db down"))
		i := impl{BaseImpl: *baseworker.NewInstance("test", 0, 0), reports: reports}
		require.Error(t, i.handle(context.Background()))
	})
}
