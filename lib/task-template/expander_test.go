package tasktemplate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	"hr-pipeline-backend/models"
)

func mustCatalog(t *testing.T, body string) stagecatalog.Provider {
	catalog, err := stagecatalog.Parse([]byte(body))
	require.NoError(t, err)
	return catalog
}

func TestExpand(t *testing.T) {
	refDate := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

	t.Run(`approach sequence check`, func(t *testing.T) {
		catalog := mustCatalog(t, `
[[stage]]
name = "Entry"
  [[stage.task]]
  title = "Approach 1"
  [[stage.task]]
  title = "General A"
  [[stage.task]]
  title = "Approach 2"
  [[stage.task]]
  title = "Approach 3"
`)
		tasks := NewInstance(catalog).Expand("Entry", refDate)
		require.Len(t, tasks, 4)

		require.Equal(t, "Approach 1", tasks[0].Title)
		require.NotNil(t, tasks[0].DueDate)
		require.Equal(t, refDate, *tasks[0].DueDate)

		require.Equal(t, "General A", tasks[1].Title)
		require.Nil(t, tasks[1].DueDate)

		require.NotNil(t, tasks[2].DueDate)
		require.Equal(t, refDate.AddDate(0, 0, 1), *tasks[2].DueDate)
		require.NotNil(t, tasks[3].DueDate)
		require.Equal(t, refDate.AddDate(0, 0, 2), *tasks[3].DueDate)
		require.Equal(t, 2, *tasks[3].SequenceIndex)

		for _, task := range tasks {
			require.Equal(t, models.TaskStatusNotStarted, task.Status)
			require.Equal(t, "Entry", task.Stage)
		}
	})

	t.Run(`explicit schedule check`, func(t *testing.T) {
		catalog := mustCatalog(t, `
[[stage]]
name = "Interview"
  [[stage.task]]
  title = "Call"
  schedule = "approach-sequence"
  due_offset_days = 10
  [[stage.task]]
  title = "Feedback"
  kind = "evaluation"
  required = true
  due_offset_days = 5
  [[stage.task]]
  title = "Second call"
  schedule = "approach-sequence"
`)
		tasks := NewInstance(catalog).Expand("Interview", refDate)
		require.Len(t, tasks, 3)
		require.Equal(t, refDate, *tasks[0].DueDate)
		require.Equal(t, refDate.AddDate(0, 0, 5), *tasks[1].DueDate)
		require.Nil(t, tasks[1].SequenceIndex)
		require.True(t, tasks[1].IsRequired)
		require.Equal(t, models.TaskKindEvaluation, tasks[1].Kind)
		require.Equal(t, refDate.AddDate(0, 0, 1), *tasks[2].DueDate)
	})

	t.Run(`stage without templates check`, func(t *testing.T) {
		catalog := mustCatalog(t, "[[stage]]\nname = \"Empty\"\n")
		tasks := NewInstance(catalog).Expand("Empty", refDate)
		require.NotNil(t, tasks)
		require.Empty(t, tasks)

		tasks = NewInstance(catalog).Expand("Unknown", refDate)
		require.Empty(t, tasks)
	})
}
