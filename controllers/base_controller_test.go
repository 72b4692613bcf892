package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"hr-pipeline-backend/lib/utils/apperrors"
	apimodels "hr-pipeline-backend/models/api"
)

func TestSendError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"валидация", apperrors.NewValidationError("stage", "этап отсутствует"), fiber.StatusBadRequest, "stage: этап отсутствует"},
		{"не найдено", apperrors.NewNotFoundError("кандидат", "c1"), fiber.StatusNotFound, "кандидат не найден (id=c1)"},
		{"нет мест", errors.Wrap(apperrors.ErrCapacityExceeded, "участие"), fiber.StatusConflict, "участие: на мероприятии нет свободных мест"},
		{"конкурентный перевод", apperrors.ErrConcurrentTransition, fiber.StatusConflict, apperrors.ErrConcurrentTransition.Error()},
		{"прочие ошибки скрываются", errors.New("pq: connection reset"), fiber.StatusInternalServerError, "Ошибка операции"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			controller := BaseAPIController{}
			app.Get("/:id", func(ctx *fiber.Ctx) error {
				return controller.SendError(ctx, controller.GetLogger(ctx), tc.err, "Ошибка операции")
			})
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/1", nil))
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)

			body := apimodels.Response{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, "fail", body.Status)
			require.Equal(t, tc.message, body.Message)
		})
	}

	t.Run(`transition error message check`, func(t *testing.T) {
		app := fiber.New()
		controller := BaseAPIController{}
		transitionErr := &apperrors.TransitionError{CandidateID: "c1", TargetStage: "Interview", Step: "create-tasks", Err: errors.New("disk full")}
		app.Get("/", func(ctx *fiber.Ctx) error {
			return controller.SendError(ctx, controller.GetLogger(ctx), transitionErr, "Ошибка перевода")
		})
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		body := apimodels.Response{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Contains(t, body.Message, "этап кандидата не изменен")
	})
}

func TestGetParam(t *testing.T) {
	app := fiber.New()
	controller := BaseAPIController{}
	app.Get("/item/:id?", func(ctx *fiber.Ctx) error {
		id, err := controller.GetID(ctx)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
		return ctx.JSON(apimodels.NewResponse(id))
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/item/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/item", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
