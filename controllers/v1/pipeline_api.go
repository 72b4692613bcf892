package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-pipeline-backend/controllers"
	"hr-pipeline-backend/lib/pipeline"
	apimodels "hr-pipeline-backend/models/api"
	candidateapimodels "hr-pipeline-backend/models/api/candidate"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app *fiber.App) {
	controller := pipelineApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Route("candidate", func(candidateRoute fiber.Router) {
			candidateRoute.Post("", controller.register)
			candidateRoute.Post("list", controller.list)
			candidateRoute.Route(":id", func(idRoute fiber.Router) {
				idRoute.Get("", controller.get)
				idRoute.Put("advance", controller.advance)
				idRoute.Get("next_stage", controller.nextStage)
				idRoute.Get("history", controller.history)
				idRoute.Put("history/:historyID/status", controller.setOutcome)
				idRoute.Get("tasks", controller.tasks)
			})
		})
		router.Put("task/:id", controller.updateTask)
	})
}

// @Summary Регистрация кандидата
// @Tags Воронка
// @Description Создание кандидата на первом этапе каталога с задачами этапа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate [post]
func (c *pipelineApiController) register(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := pipeline.Instance.Register(ctx.UserContext(), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка регистрации кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список кандидатов
// @Tags Воронка
// @Description Список кандидатов с фильтром по этапу, источнику, потоку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/list [post]
func (c *pipelineApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := pipeline.Instance.ListCandidates(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Получение по ИД
// @Tags Воронка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id} [get]
func (c *pipelineApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := pipeline.Instance.GetCandidate(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Перевод на этап
// @Tags Воронка
// @Description Перевод кандидата на любой этап каталога. Текущая запись истории закрывается, создаются задачи нового этапа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param   stage          		query    string  				    	true         "target stage"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.AdvanceResultView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id}/advance [put]
func (c *pipelineApiController) advance(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage := ctx.Query("stage")
	if stage == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан этап"))
	}
	result, err := pipeline.Instance.Advance(ctx.UserContext(), id, stage)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка перевода кандидата на этап")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(candidateapimodels.AdvanceResultView{
		PreviousStage: result.PreviousStage,
		History:       candidateapimodels.StageHistoryConvert(result.History),
		Tasks:         candidateapimodels.TaskListConvert(result.Tasks),
	}))
}

// @Summary Рекомендуемый следующий этап
// @Tags Воронка
// @Description Следующий этап по каталогу, пустой ответ - кандидат на последнем этапе
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id}/next_stage [get]
func (c *pipelineApiController) nextStage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage, ok, err := pipeline.Instance.RecommendNextStage(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения следующего этапа")
	}
	if !ok {
		return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(stage))
}

// @Summary История этапов
// @Tags Воронка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Success 200 {object} apimodels.Response{data=[]candidateapimodels.StageHistoryView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id}/history [get]
func (c *pipelineApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := pipeline.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения истории кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Исход этапа
// @Tags Воронка
// @Description Установка исхода кандидата на этапе (passed, failed, no-show...)
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param   historyID      		path    string  				    	true         "history entry ID"
// @Param	body body	 candidateapimodels.OutcomeData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id}/history/{historyID}/status [put]
func (c *pipelineApiController) setOutcome(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	historyID, err := c.GetParam(ctx, "historyID")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.OutcomeData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = pipeline.Instance.SetOutcome(ctx.UserContext(), id, historyID, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка установки исхода этапа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Задачи кандидата
// @Tags Воронка
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param   stage          		query    string  				    	false        "stage"
// @Success 200 {object} apimodels.Response{data=[]candidateapimodels.TaskView}
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id}/tasks [get]
func (c *pipelineApiController) tasks(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := pipeline.Instance.Tasks(id, ctx.Query("stage"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задач кандидата")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Изменение задачи
// @Tags Воронка
// @Description Статус, срок и заметки задачи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "task ID"
// @Param	body body	 candidateapimodels.TaskUpdate	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/task/{id} [put]
func (c *pipelineApiController) updateTask(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload candidateapimodels.TaskUpdate
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = pipeline.Instance.UpdateTask(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения задачи")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
