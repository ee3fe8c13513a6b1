package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"techscreen-backend/controllers"
	"techscreen-backend/lib/workflow"
	"techscreen-backend/middleware"
	"techscreen-backend/models"
	apimodels "techscreen-backend/models/api"
	interviewapimodels "techscreen-backend/models/api/interview"
)

// @Summary Enhance a job description only
// @Tags Workflow
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		interviewapimodels.EnhanceJDRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.EnhanceJDResponse}
// @Failure 400 {object} apimodels.Response
// @router /api/v1/interview/workflow/jd-only [post]
func (c *interviewApiController) workflowJDOnly(ctx *fiber.Ctx) error {
	var payload interviewapimodels.EnhanceJDRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.Workflow.JDOnly(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job description enhancement failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Enhance a job description and generate its interview
// @Tags Workflow
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		interviewapimodels.FullWorkflowRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=interviewapimodels.FullWorkflowResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response{data=interviewapimodels.PartialWorkflowResult}
// @router /api/v1/interview/workflow/full [post]
func (c *interviewApiController) workflowFull(ctx *fiber.Ctx) error {
	var payload interviewapimodels.FullWorkflowRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.Workflow.Full(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		var partial *workflow.InterviewFailedError
		if errors.As(err, &partial) {
			return sendPartial(ctx, partial)
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "workflow failed")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

func sendPartial(ctx *fiber.Ctx, partial *workflow.InterviewFailedError) error {
	kind := models.ErrKindStorage
	var genErr *models.GenerationError
	if errors.As(partial.Err, &genErr) {
		kind = genErr.Kind
	}
	result := interviewapimodels.PartialWorkflowResult{
		JobDescriptionID: partial.JobDescriptionID,
		ReqID:            partial.ReqID,
		Error:            partial.Err.Error(),
		ErrorKind:        string(kind),
		TokensUsed:       partial.TokensUsed,
	}
	return ctx.Status(controllers.StatusForKind(kind)).
		JSON(apimodels.NewErrorWithData(partial.Message(), string(kind), result))
}
