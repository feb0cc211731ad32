package controller

import (
	"errors"

	"eduplatform_backend/internal/model"
	"eduplatform_backend/internal/service"
	"eduplatform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

func (c *AssessmentController) CreateAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.CreateAssessment(ctx.Request.Context(), claims.UID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

func (c *AssessmentController) SubmitAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// A student may only submit on their own behalf.
	if claims.Role == model.RoleStudent && req.StudentID != claims.UID {
		util.Forbidden(ctx)
		return
	}

	result, err := c.Service.SubmitAssessment(ctx.Request.Context(), req)
	if errors.Is(err, util.ErrAssessmentNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

func (c *AssessmentController) GetResult(ctx *gin.Context) {
	assessmentID := ctx.Param("id")
	if assessmentID == "" {
		util.BadRequest(ctx, "Assessment ID is required")
		return
	}

	studentID := ctx.Query("studentId")
	if studentID == "" {
		util.BadRequest(ctx, "Student ID is required")
		return
	}

	result, err := c.Service.GetResult(ctx.Request.Context(), assessmentID, studentID)
	if errors.Is(err, util.ErrAssessmentNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
