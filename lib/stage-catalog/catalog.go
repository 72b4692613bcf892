package stagecatalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-pipeline-backend/models"
)

//go:embed default_catalog.toml
var defaultCatalog []byte

// TaskTemplate шаблон задачи этапа
type TaskTemplate struct {
	ID            string
	Title         string
	Kind          models.TaskKind
	Schedule      models.TaskSchedule
	Order         int
	Priority      int
	IsRequired    bool
	DueOffsetDays *int
}

type Stage struct {
	Name      string
	Order     int
	Group     string
	Templates []TaskTemplate
}

type Provider interface {
	// Stages этапы в каноническом порядке
	Stages() []Stage
	StageNames() []string
	IsStage(name string) bool
	FirstStage() string
	// NextStage рекомендуемый следующий этап, только подсказка
	NextStage(current string) (next string, ok bool)
	StageOrder(name string) int
	ListTemplates(stage string) []TaskTemplate
	// StageGroups соответствие этап -> группа этапов для отчетов
	StageGroups() map[string]string
}

var Instance Provider

// NewHandler загружает каталог из файла, при пустом пути - встроенный каталог
func NewHandler(path string) {
	provider, err := Load(path)
	if err != nil {
		panic(err.Error())
	}
	Instance = provider
}

func Load(path string) (Provider, error) {
	if strings.TrimSpace(path) == "" {
		log.Info("используется встроенный каталог этапов подбора")
		return Parse(defaultCatalog)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка чтения каталога этапов %s", path)
	}
	provider, err := Parse(body)
	if err != nil {
		return nil, errors.Wrapf(err, "ошибка загрузки каталога этапов %s", path)
	}
	log.WithField("path", path).Info("каталог этапов подбора загружен")
	return provider, nil
}

func Default() Provider {
	provider, err := Parse(defaultCatalog)
	if err != nil {
		panic(err.Error())
	}
	return provider
}

type catalogFile struct {
	Stage []stageFile `toml:"stage"`
}

type stageFile struct {
	Name  string         `toml:"name"`
	Group string         `toml:"group"`
	Task  []templateFile `toml:"task"`
}

type templateFile struct {
	ID            string `toml:"id"`
	Title         string `toml:"title"`
	Kind          string `toml:"kind"`
	Priority      int    `toml:"priority"`
	Required      bool   `toml:"required"`
	DueOffsetDays *int   `toml:"due_offset_days"`
	Schedule      string `toml:"schedule"`
}

// старые каталоги помечали задачи-касания только названием "Approach N"
var legacyApproachTitle = regexp.MustCompile(`^Approach\s+\d+$`)

func Parse(body []byte) (Provider, error) {
	file := catalogFile{}
	if err := toml.Unmarshal(body, &file); err != nil {
		return nil, errors.Wrap(err, "некорректный формат каталога этапов")
	}
	if len(file.Stage) == 0 {
		return nil, errors.New("в каталоге нет ни одного этапа")
	}
	result := &impl{
		stages:  make([]Stage, 0, len(file.Stage)),
		byName:  make(map[string]int, len(file.Stage)),
		byGroup: make(map[string]string, len(file.Stage)),
	}
	for k, item := range file.Stage {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, errors.Errorf("не указано название этапа №%d", k+1)
		}
		if _, exist := result.byName[name]; exist {
			return nil, errors.Errorf("этап %q указан в каталоге повторно", name)
		}
		stage := Stage{
			Name:      name,
			Order:     k,
			Group:     strings.TrimSpace(item.Group),
			Templates: make([]TaskTemplate, 0, len(item.Task)),
		}
		for order, task := range item.Task {
			tpl, err := convertTemplate(name, order, task)
			if err != nil {
				return nil, err
			}
			stage.Templates = append(stage.Templates, tpl)
		}
		result.byName[name] = len(result.stages)
		if stage.Group != "" {
			result.byGroup[name] = stage.Group
		}
		result.stages = append(result.stages, stage)
	}
	return result, nil
}

func convertTemplate(stage string, order int, task templateFile) (TaskTemplate, error) {
	title := strings.TrimSpace(task.Title)
	if title == "" {
		return TaskTemplate{}, errors.Errorf("этап %q: не указано название задачи №%d", stage, order+1)
	}
	kind := models.TaskKind(task.Kind)
	if kind == "" {
		kind = models.TaskKindGeneral
	}
	if !kind.IsValid() {
		return TaskTemplate{}, errors.Errorf("этап %q, задача %q: неизвестный тип задачи %q", stage, title, task.Kind)
	}
	schedule := models.TaskSchedule(task.Schedule)
	if schedule == "" {
		schedule = models.TaskScheduleGeneral
		if legacyApproachTitle.MatchString(title) {
			schedule = models.TaskScheduleApproachSequence
		}
	}
	if !schedule.IsValid() {
		return TaskTemplate{}, errors.Errorf("этап %q, задача %q: неизвестное правило срока %q", stage, title, task.Schedule)
	}
	if task.DueOffsetDays != nil && *task.DueOffsetDays < 0 {
		return TaskTemplate{}, errors.Errorf("этап %q, задача %q: отрицательный срок", stage, title)
	}
	id := strings.TrimSpace(task.ID)
	if id == "" {
		id = fmt.Sprintf("%s#%d", stage, order+1)
	}
	return TaskTemplate{
		ID:            id,
		Title:         title,
		Kind:          kind,
		Schedule:      schedule,
		Order:         order,
		Priority:      task.Priority,
		IsRequired:    task.Required,
		DueOffsetDays: task.DueOffsetDays,
	}, nil
}

type impl struct {
	stages  []Stage
	byName  map[string]int
	byGroup map[string]string
}

func (i impl) Stages() []Stage {
	return i.stages
}

func (i impl) StageNames() []string {
	result := make([]string, 0, len(i.stages))
	for _, stage := range i.stages {
		result = append(result, stage.Name)
	}
	return result
}

func (i impl) IsStage(name string) bool {
	_, ok := i.byName[name]
	return ok
}

func (i impl) FirstStage() string {
	return i.stages[0].Name
}

func (i impl) NextStage(current string) (string, bool) {
	idx, ok := i.byName[current]
	if !ok || idx+1 >= len(i.stages) {
		return "", false
	}
	return i.stages[idx+1].Name, true
}

// StageOrder порядковый номер этапа, неизвестные этапы - в конец
func (i impl) StageOrder(name string) int {
	idx, ok := i.byName[name]
	if !ok {
		return len(i.stages)
	}
	return idx
}

func (i impl) ListTemplates(stage string) []TaskTemplate {
	idx, ok := i.byName[stage]
	if !ok {
		return nil
	}
	return i.stages[idx].Templates
}

func (i impl) StageGroups() map[string]string {
	result := make(map[string]string, len(i.byGroup))
	for stage, group := range i.byGroup {
		result[stage] = group
	}
	return result
}
