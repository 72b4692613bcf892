package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"hr-pipeline-backend/controllers"
	"hr-pipeline-backend/lib/analytics"
	apimodels "hr-pipeline-backend/models/api"
	analyticsapimodels "hr-pipeline-backend/models/api/analytics"
)

type analyticsApiController struct {
	controllers.BaseAPIController
}

func InitAnalyticsApiRouters(app *fiber.App) {
	controller := analyticsApiController{}
	app.Route("analytics", func(router fiber.Router) {
		router.Get("stages", controller.stages)
		router.Get("sources", controller.sources)
		router.Get("groups", controller.groups)
		router.Get("conversions", controller.conversions)
		router.Get("paths", controller.paths)
		router.Get("report", controller.report)
		router.Get("export", controller.export)
	})
}

// @Summary Исходы по этапам
// @Tags Аналитика
// @Description Каждая запись истории учитывается на своем этапе, этапы без записей не выводятся
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]analyticsapimodels.OutcomeResult}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/stages [get]
func (c *analyticsApiController) stages(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.Stages()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения аналитики по этапам")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Исходы по источникам
// @Tags Аналитика
// @Description Учитывается только последняя запись истории кандидата
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]analyticsapimodels.OutcomeResult}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/sources [get]
func (c *analyticsApiController) sources(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.Sources()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения аналитики по источникам кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Исходы по группам этапов
// @Tags Аналитика
// @Description Учитывается только последняя запись истории кандидата
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]analyticsapimodels.OutcomeResult}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/groups [get]
func (c *analyticsApiController) groups(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.Groups()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения аналитики по группам этапов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Конверсия между этапами
// @Tags Аналитика
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]analyticsapimodels.ConversionEdge}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/conversions [get]
func (c *analyticsApiController) conversions(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.Conversions()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения конверсии между этапами")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Частые пути кандидатов
// @Tags Аналитика
// @Param   Authorization		header	string	true	"Authorization token"
// @Param   limit          		query    int  				    	false        "paths limit"
// @Success 200 {object} apimodels.Response{data=[]analyticsapimodels.FlowPath}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/paths [get]
func (c *analyticsApiController) paths(ctx *fiber.Ctx) error {
	var filter analyticsapimodels.PathFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректный параметр limit"))
	}
	data, err := analytics.Instance.Paths(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения путей кандидатов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Отчет воронки
// @Tags Аналитика
// @Description Все отчеты по одному снимку истории
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=analyticsapimodels.FunnelReport}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/report [get]
func (c *analyticsApiController) report(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.Report()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка построения отчета воронки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(data))
}

// @Summary Отчет воронки. Выгрузить в Excel
// @Tags Аналитика
// @Param   Authorization		header	string	true	"Authorization token"
// @Success 200
// @Failure 500 {object} apimodels.Response
// @router /api/v1/analytics/export [get]
func (c *analyticsApiController) export(ctx *fiber.Ctx) error {
	data, err := analytics.Instance.ExportToXls()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки отчета воронки в Excel")
	}
	fileName := fmt.Sprintf("funnel-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}
