package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"techscreen-backend/controllers"
	"techscreen-backend/db"
	pdfexport "techscreen-backend/lib/export/pdf"
	xlsexport "techscreen-backend/lib/export/xls"
	filestorage "techscreen-backend/lib/file-storage"
	generationlog "techscreen-backend/lib/generation-log"
	"techscreen-backend/lib/interview"
	jdenhancement "techscreen-backend/lib/jd-enhancement"
	questioncache "techscreen-backend/lib/question-cache"
	"techscreen-backend/lib/workflow"
	"techscreen-backend/middleware"
	apimodels "techscreen-backend/models/api"
	interviewapimodels "techscreen-backend/models/api/interview"
	dbmodels "techscreen-backend/models/db"
)

// InterviewAPI bundles the services behind the interview routes.
type InterviewAPI struct {
	JWTSecret  string
	DB         *gorm.DB
	Enhancer   jdenhancement.Provider
	Interviews interview.Provider
	Workflow   workflow.Provider
	Logs       generationlog.Provider
	Cache      questioncache.Provider
	Xls        xlsexport.Provider
	Archive    filestorage.Provider
}

type interviewApiController struct {
	controllers.BaseAPIController
	InterviewAPI
}

func InitInterviewApiRouters(router fiber.Router, api InterviewAPI) {
	controller := interviewApiController{InterviewAPI: api}
	router.Route("interview", func(root fiber.Router) {
		root.Get("health", controller.health)
		root.Use(middleware.AuthorizationRequired(api.JWTSecret))

		root.Route("jd", func(jdRoute fiber.Router) {
			jdRoute.Post("enhance", controller.enhanceJD)
			jdRoute.Get(":req_id", controller.getJD)
		})
		root.Route("workflow", func(wfRoute fiber.Router) {
			wfRoute.Post("jd-only", controller.workflowJDOnly)
			wfRoute.Post("full", controller.workflowFull)
		})
		root.Post("generate", controller.generate)
		root.Get("req/:req_id", controller.listByReqID)
		root.Get("logs/:req_id", controller.logs)
		root.Get("cache", controller.cachedQuestion)

		root.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("status", middleware.AdminRequired(), controller.updateStatus)
			idRoute.Delete("", middleware.AdminRequired(), controller.delete)
			idRoute.Put("questions/:number/criteria/:index", middleware.AdminRequired(), controller.setCriterion)
			idRoute.Get("export/xlsx", controller.exportXlsx)
			idRoute.Get("export/pdf", controller.exportPdf)
			idRoute.Post("archive", controller.archive)
			idRoute.Get("archives", controller.archives)
		})
	})
}

// @Summary Health check
// @Tags Interview
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/interview/health [get]
func (c *interviewApiController) health(ctx *fiber.Ctx) error {
	if err := db.PingDB(c.DB); err != nil {
		c.GetLogger(ctx).WithError(err).Warn("database ping failed")
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("database is unavailable"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fiber.Map{"database": "ok"}))
}

// @Summary Enhance a job description
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		interviewapimodels.EnhanceJDRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.EnhanceJDResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/interview/jd/enhance [post]
func (c *interviewApiController) enhanceJD(ctx *fiber.Ctx) error {
	var payload interviewapimodels.EnhanceJDRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.Enhancer.Enhance(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "job description enhancement failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Get a job description by request id
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   req_id          	path    	string  true         "request id"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.JobDescriptionView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/jd/{req_id} [get]
func (c *interviewApiController) getJD(ctx *fiber.Ctx) error {
	view, err := c.Enhancer.GetByReqID(ctx.Params("req_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get job description")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Generate an interview for an enhanced job description
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		interviewapimodels.GenerateInterviewRequest	true	"request body"
// @Success 201 {object} apimodels.Response{data=interviewapimodels.GenerateInterviewResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @router /api/v1/interview/generate [post]
func (c *interviewApiController) generate(ctx *fiber.Ctx) error {
	var payload interviewapimodels.GenerateInterviewRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := c.Interviews.Generate(ctx.UserContext(), middleware.GetUserID(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "interview generation failed")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(resp))
}

// @Summary Get an interview
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.InterviewView}
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/{id} [get]
func (c *interviewApiController) get(ctx *fiber.Ctx) error {
	view, err := c.Interviews.GetByID(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to get interview")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary List interviews of a request
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   req_id          	path    	string  true         "request id"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.InterviewView}
// @router /api/v1/interview/req/{req_id} [get]
func (c *interviewApiController) listByReqID(ctx *fiber.Ctx) error {
	list, err := c.Interviews.ListByReqID(ctx.Params("req_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list interviews")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Set interview status
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Param	body				body		interviewapimodels.UpdateStatusRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/{id}/status [put]
func (c *interviewApiController) updateStatus(ctx *fiber.Ctx) error {
	var payload interviewapimodels.UpdateStatusRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := c.Interviews.UpdateStatus(ctx.Params("id"), payload.Status); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update interview status")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete an interview with its questions
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/{id} [delete]
func (c *interviewApiController) delete(ctx *fiber.Ctx) error {
	if err := c.Interviews.Delete(ctx.Params("id")); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to delete interview")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark a criterion as checked
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Param   number          	path    	int  	true         "question number"
// @Param   index          		path    	int  	true         "criterion index, 1-based"
// @Param	body				body		interviewapimodels.SetCriterionRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.QuestionView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/{id}/questions/{number}/criteria/{index} [put]
func (c *interviewApiController) setCriterion(ctx *fiber.Ctx) error {
	number, err := ctx.ParamsInt("number")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("invalid question number"))
	}
	index, err := ctx.ParamsInt("index")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("invalid criterion index"))
	}
	var payload interviewapimodels.SetCriterionRequest
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := c.Interviews.SetCriterionChecked(ctx.Params("id"), number, index, payload.IsChecked)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to update criterion")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Export the scoring sheet
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Success 200 {file} file
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/{id}/export/xlsx [get]
func (c *interviewApiController) exportXlsx(ctx *fiber.Ctx) error {
	data, err := c.render(ctx.Params("id"), dbmodels.ArchiveFormatXLSX)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export interview")
	}
	ctx.Attachment(exportFileName(ctx.Params("id"), dbmodels.ArchiveFormatXLSX))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Export the interview kit
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Success 200 {file} file
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/{id}/export/pdf [get]
func (c *interviewApiController) exportPdf(ctx *fiber.Ctx) error {
	data, err := c.render(ctx.Params("id"), dbmodels.ArchiveFormatPDF)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export interview")
	}
	ctx.Attachment(exportFileName(ctx.Params("id"), dbmodels.ArchiveFormatPDF))
	return ctx.Status(fiber.StatusOK).Send(data)
}

// @Summary Upload an export to object storage
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Param   format          	query    	string  false        "pdf or xlsx, default pdf"
// @Success 201 {object} apimodels.Response{data=interviewapimodels.ArchiveView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/interview/{id}/archive [post]
func (c *interviewApiController) archive(ctx *fiber.Ctx) error {
	format := dbmodels.ArchiveFormat(ctx.Query("format", string(dbmodels.ArchiveFormatPDF)))
	if !format.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(fmt.Sprintf("unsupported format: %q", format)))
	}
	id := ctx.Params("id")
	data, err := c.render(id, format)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to export interview")
	}
	view, err := c.Archive.Archive(ctx.UserContext(), middleware.GetUserID(ctx), id, format, data)
	if err != nil {
		if errors.Is(err, filestorage.ErrNotConfigured) {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError(err.Error()))
		}
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to archive interview")
	}
	return ctx.Status(fiber.StatusCreated).JSON(apimodels.NewResponse(view))
}

// @Summary List uploaded exports of an interview
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  true         "interview id"
// @Success 200 {object} apimodels.Response{data=[]dbmodels.InterviewArchive}
// @router /api/v1/interview/{id}/archives [get]
func (c *interviewApiController) archives(ctx *fiber.Ctx) error {
	list, err := c.Archive.ListByInterview(ctx.Params("id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list archives")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Generation audit trail of a request
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   req_id          	path    	string  true         "request id"
// @Success 200 {object} apimodels.Response{data=[]interviewapimodels.GenerationLogView}
// @router /api/v1/interview/logs/{req_id} [get]
func (c *interviewApiController) logs(ctx *fiber.Ctx) error {
	list, err := c.Logs.ListByReqID(ctx.Params("req_id"))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "failed to list generation logs")
	}
	result := make([]interviewapimodels.GenerationLogView, 0, len(list))
	for _, rec := range list {
		result = append(result, interviewapimodels.GenerationLogConvert(rec))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Look up a cached question
// @Tags Interview
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   topic          		query    	string  true         "subject area"
// @Param   skill_level        	query    	string  true         "skill level"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.CachedQuestionView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/cache [get]
func (c *interviewApiController) cachedQuestion(ctx *fiber.Ctx) error {
	topic := ctx.Query("topic")
	skillLevel := ctx.Query("skill_level")
	if topic == "" || skillLevel == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("topic and skill_level are required"))
	}
	rec, err := c.Cache.Lookup(topic, skillLevel)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "cached question")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(interviewapimodels.CachedQuestionConvert(*rec)))
}

func (c *interviewApiController) render(id string, format dbmodels.ArchiveFormat) ([]byte, error) {
	view, err := c.Interviews.GetByID(id)
	if err != nil {
		return nil, err
	}
	switch format {
	case dbmodels.ArchiveFormatXLSX:
		buf, err := c.Xls.ExportInterview(*view)
		if err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case dbmodels.ArchiveFormatPDF:
		return pdfexport.GenerateInterviewKit(*view)
	}
	return nil, errors.Errorf("unsupported format: %q", format)
}

func exportFileName(id string, format dbmodels.ArchiveFormat) string {
	return fmt.Sprintf("interview-%s.%s", id, format)
}
