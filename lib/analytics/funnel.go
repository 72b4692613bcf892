package analytics

import (
	"math"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"hr-pipeline-backend/models"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
	dbmodels "hr-pipeline-backend/models/db"
)

// Функции отчетов чистые: результат зависит только от входной истории, запись с ошибкой пропускается.

type classifiedEntry struct {
	dbmodels.StageHistory
	category models.OutcomeCategory
}

// StageResults исходы по каждому этапу, учитывается каждая запись истории
func StageResults(history []dbmodels.StageHistory) []analyticsapimodels.OutcomeResult {
	byStage := map[string]*analyticsapimodels.OutcomeResult{}
	for _, entries := range groupByCandidate(history) {
		for _, entry := range entries {
			addOutcome(byStage, entry.Stage, entry.category)
		}
	}
	return sortedResults(byStage)
}

// SourceResults исходы по источнику кандидата, учитывается только последняя запись кандидата
func SourceResults(history []dbmodels.StageHistory, sources map[string]models.CandidateSource) []analyticsapimodels.OutcomeResult {
	bySource := map[string]*analyticsapimodels.OutcomeResult{}
	for candidateID, entries := range groupByCandidate(history) {
		source, ok := sources[candidateID]
		if !ok || source == "" {
			log.WithField("candidate_id", candidateID).Warn("отчет по источникам: у кандидата не найден источник, пропущен")
			continue
		}
		last := entries[len(entries)-1]
		addOutcome(bySource, string(source), last.category)
	}
	return sortedResults(bySource)
}

// GroupResults исходы по группам этапов, учитывается только последняя запись кандидата
func GroupResults(history []dbmodels.StageHistory, stageGroups map[string]string) []analyticsapimodels.OutcomeResult {
	byGroup := map[string]*analyticsapimodels.OutcomeResult{}
	for _, entries := range groupByCandidate(history) {
		last := entries[len(entries)-1]
		group, ok := stageGroups[last.Stage]
		if !ok || group == "" {
			continue
		}
		addOutcome(byGroup, group, last.category)
	}
	return sortedResults(byGroup)
}

// ConversionRates доля переходов from -> to с исходом passed на этапе to от всех переходов с этапа from
func ConversionRates(history []dbmodels.StageHistory) []analyticsapimodels.ConversionEdge {
	type edgeKey struct {
		from string
		to   string
	}
	fromTotals := map[string]int{}
	edges := map[edgeKey]*analyticsapimodels.ConversionEdge{}
	for _, entries := range groupByCandidate(history) {
		for k := 1; k < len(entries); k++ {
			from, to := entries[k-1], entries[k]
			key := edgeKey{from: from.Stage, to: to.Stage}
			edge, ok := edges[key]
			if !ok {
				edge = &analyticsapimodels.ConversionEdge{FromStage: from.Stage, ToStage: to.Stage}
				edges[key] = edge
			}
			edge.Count++
			if to.category == models.OutcomePassed {
				edge.Passed++
			}
			fromTotals[from.Stage]++
		}
	}
	result := make([]analyticsapimodels.ConversionEdge, 0, len(edges))
	for _, edge := range edges {
		edge.Rate = percent(edge.Passed, fromTotals[edge.FromStage])
		result = append(result, *edge)
	}
	sort.Slice(result, func(a, b int) bool {
		if result[a].FromStage != result[b].FromStage {
			return result[a].FromStage < result[b].FromStage
		}
		return result[a].ToStage < result[b].ToStage
	})
	return result
}

// FlowPaths частота последовательностей этапов (подряд идущие повторы схлопываются)
func FlowPaths(history []dbmodels.StageHistory) []analyticsapimodels.FlowPath {
	grouped := groupByCandidate(history)
	byPath := map[string]*analyticsapimodels.FlowPath{}
	for _, entries := range grouped {
		sequence := make([]string, 0, len(entries))
		for _, entry := range entries {
			if len(sequence) > 0 && sequence[len(sequence)-1] == entry.Stage {
				continue
			}
			sequence = append(sequence, entry.Stage)
		}
		key := pathKey(sequence)
		path, ok := byPath[key]
		if !ok {
			path = &analyticsapimodels.FlowPath{StageSequence: sequence}
			byPath[key] = path
		}
		path.Count++
	}
	result := make([]analyticsapimodels.FlowPath, 0, len(byPath))
	for _, path := range byPath {
		path.Percentage = percent(path.Count, len(grouped))
		result = append(result, *path)
	}
	sort.Slice(result, func(a, b int) bool {
		if result[a].Count != result[b].Count {
			return result[a].Count > result[b].Count
		}
		return pathKey(result[a].StageSequence) < pathKey(result[b].StageSequence)
	})
	return result
}

// groupByCandidate корректные записи кандидата в порядке создания (при равном времени - в порядке входа)
func groupByCandidate(history []dbmodels.StageHistory) map[string][]classifiedEntry {
	result := map[string][]classifiedEntry{}
	for _, rec := range history {
		logger := log.WithField("history_id", rec.ID)
		if rec.CandidateID == "" || rec.Stage == "" {
			logger.Warn("отчет воронки: запись истории без кандидата или этапа пропущена")
			continue
		}
		category, err := models.ClassifyOutcome(rec.Stage, rec.Status)
		if err != nil {
			logger.WithError(err).Warn("отчет воронки: запись истории пропущена")
			continue
		}
		result[rec.CandidateID] = append(result[rec.CandidateID], classifiedEntry{StageHistory: rec, category: category})
	}
	for _, entries := range result {
		sort.SliceStable(entries, func(a, b int) bool {
			return entries[a].CreatedAt.Before(entries[b].CreatedAt)
		})
	}
	return result
}

func addOutcome(results map[string]*analyticsapimodels.OutcomeResult, key string, category models.OutcomeCategory) {
	result, ok := results[key]
	if !ok {
		result = &analyticsapimodels.OutcomeResult{Key: key}
		results[key] = result
	}
	result.Add(category)
}

func sortedResults(results map[string]*analyticsapimodels.OutcomeResult) []analyticsapimodels.OutcomeResult {
	list := make([]analyticsapimodels.OutcomeResult, 0, len(results))
	for _, result := range results {
		list = append(list, *result)
	}
	sort.Slice(list, func(a, b int) bool {
		return list[a].Key < list[b].Key
	})
	return list
}

func pathKey(sequence []string) string {
	return strings.Join(sequence, " > ")
}

// percent процент с одним знаком после запятой
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}
