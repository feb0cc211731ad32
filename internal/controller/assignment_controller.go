package controller

import (
	"errors"

	"eduplatform_backend/internal/service"
	"eduplatform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Service *service.AssignmentService
}

func NewAssignmentController(svc *service.AssignmentService) *AssignmentController {
	return &AssignmentController{Service: svc}
}

func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.Service.CreateAssignment(ctx.Request.Context(), claims.UID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, a)
}

func (c *AssignmentController) SubmitAssignment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	assignmentID := ctx.Param("id")
	if assignmentID == "" {
		util.BadRequest(ctx, "Assignment ID is required")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	sub, err := c.Service.SubmitAssignment(
		ctx.Request.Context(),
		assignmentID,
		claims.UID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if errors.Is(err, util.ErrAssignmentNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sub)
}

func (c *AssignmentController) GetSubmissions(ctx *gin.Context) {
	assignmentID := ctx.Param("id")
	if assignmentID == "" {
		util.BadRequest(ctx, "Assignment ID is required")
		return
	}

	record, err := c.Service.GetSubmissions(ctx.Request.Context(), assignmentID)
	if errors.Is(err, util.ErrAssignmentNotFound) {
		util.NotFound(ctx, err.Error())
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if record == nil {
		util.Success(ctx, gin.H{"studentIds": []string{}, "students": []interface{}{}})
		return
	}
	util.Success(ctx, record)
}
