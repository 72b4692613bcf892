package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"hr-pipeline-backend/controllers"
	stagecatalog "hr-pipeline-backend/lib/stage-catalog"
	apimodels "hr-pipeline-backend/models/api"
	catalogapimodels "hr-pipeline-backend/models/api/catalog"
)

type catalogApiController struct {
	controllers.BaseAPIController
}

func InitCatalogApiRouters(app *fiber.App) {
	controller := catalogApiController{}
	app.Get("pipeline/stages", controller.stages)
}

// @Summary Каталог этапов
// @Tags Воронка
// @Description Этапы в каноническом порядке с шаблонами задач
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]catalogapimodels.StageView}
// @router /api/v1/pipeline/stages [get]
func (c *catalogApiController) stages(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(catalogapimodels.StageListConvert(stagecatalog.Instance.Stages())))
}
