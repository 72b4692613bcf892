package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-pipeline-backend/controllers"
	"hr-pipeline-backend/lib/participation"
	apimodels "hr-pipeline-backend/models/api"
	participationapimodels "hr-pipeline-backend/models/api/participation"
)

type participationApiController struct {
	controllers.BaseAPIController
}

func InitParticipationApiRouters(app *fiber.App) {
	controller := participationApiController{}
	app.Route("pipeline", func(router fiber.Router) {
		router.Put("participation", controller.recordResponse)
		router.Get("candidate/:id/participation", controller.getStatus)
		router.Post("session", controller.createSession)
		router.Get("session/list", controller.listSessions)
	})
}

// @Summary Ответ об участии
// @Tags Мероприятия
// @Description Решение кандидата об участии в мероприятии этапа. Повторный ответ перезаписывает предыдущий
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 participationapimodels.ResponseData	true	"request body"
// @Success 200 {object} apimodels.Response{data=participationapimodels.ParticipationView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/participation [put]
func (c *participationApiController) recordResponse(ctx *fiber.Ctx) error {
	var payload participationapimodels.ResponseData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := participation.Instance.RecordResponse(ctx.UserContext(), payload.CandidateID, payload.SessionID, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения ответа об участии")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(participationapimodels.ParticipationConvert(*rec)))
}

// @Summary Статус участия
// @Tags Мероприятия
// @Description Статус участия кандидата в мероприятии этапа, not_set - ответа нет
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "candidate ID"
// @Param   stage          		query    string  				    	true         "stage"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/candidate/{id}/participation [get]
func (c *participationApiController) getStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	stage := ctx.Query("stage")
	if stage == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан этап"))
	}
	status, err := participation.Instance.GetStatus(id, stage)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения статуса участия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(status))
}

// @Summary Создание мероприятия
// @Tags Мероприятия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 participationapimodels.SessionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/session [post]
func (c *participationApiController) createSession(ctx *fiber.Ctx) error {
	var payload participationapimodels.SessionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := participation.Instance.CreateSession(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания мероприятия")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список мероприятий
// @Tags Мероприятия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   stage          		query    string  				    	false        "stage"
// @Success 200 {object} apimodels.Response{data=[]participationapimodels.SessionView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/pipeline/session/list [get]
func (c *participationApiController) listSessions(ctx *fiber.Ctx) error {
	list, err := participation.Instance.ListSessions(ctx.Query("stage"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка мероприятий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
