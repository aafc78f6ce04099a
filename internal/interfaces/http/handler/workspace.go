package handler

import (
	"github.com/gin-gonic/gin"

	"story-engine/internal/application/workspace"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
	apperrors "story-engine/pkg/errors"
)

// WorkspaceHandler 章节工作台处理器
type WorkspaceHandler struct {
	workspace *workspace.Service
	catalog   workspace.ModelCatalog
}

// NewWorkspaceHandler 创建章节工作台处理器
func NewWorkspaceHandler(ws *workspace.Service, catalog workspace.ModelCatalog) *WorkspaceHandler {
	return &WorkspaceHandler{workspace: ws, catalog: catalog}
}

// ListModels 返回可选模型与默认模型；列表仅供展示，任意模型 ID 均可提交
// @Summary 模型列表
// @Tags Generation
// @Produce json
// @Success 200 {object} dto.Response[dto.ModelsResponse]
// @Router /v1/models [get]
func (h *WorkspaceHandler) ListModels(c *gin.Context) {
	dto.Success(c, &dto.ModelsResponse{
		Default: h.catalog.DefaultModel(),
		Models:  h.catalog.Models(),
	})
}

// Load 加载工作台视图；query 参数 input 用于角色识别
// @Summary 章节工作台
// @Tags Workspace
// @Produce json
// @Param sid path int true "故事 ID"
// @Param cid path int true "章节 ID"
// @Param input query string false "识别角色用的文本"
// @Success 200 {object} dto.Response[workspace.View]
// @Router /v1/stories/{sid}/chapters/{cid}/workspace [get]
func (h *WorkspaceHandler) Load(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	view, err := h.workspace.Load(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, c.Query("input"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, view)
}

// Submit 处理工作台表单提交
// @Summary 提交工作台表单
// @Description action 字段选择操作，缺省为 save_chapter；生成失败不影响已保存内容，错误以占位文本写入 outputs
// @Tags Workspace
// @Accept x-www-form-urlencoded
// @Produce json
// @Param sid path int true "故事 ID"
// @Param cid path int true "章节 ID"
// @Success 200 {object} dto.Response[workspace.View]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/chapters/{cid}/workspace [post]
func (h *WorkspaceHandler) Submit(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		dto.Fail(c, apperrors.Validation("invalid form: %s", err.Error()))
		return
	}

	cmds, err := workspace.Decode(c.Request.PostForm)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	view, err := h.workspace.Submit(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, cmds)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, view)
}

// Generate 单次生成（JSON 接口）；生成失败返回 502
// @Summary 生成正文/展开节拍/拆解关键事件
// @Tags Generation
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "生成参数"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 502 {object} dto.ErrorResponse
// @Router /v1/stories/{sid}/chapters/{cid}/generate [post]
func (h *WorkspaceHandler) Generate(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.GenerateRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	var cmd workspace.Command
	switch req.Kind {
	case dto.GenerateKindProse:
		cmd = workspace.GenerateProse{Model: req.Model, Preset: req.Preset, Input: req.Input, Selection: req.SelectedCharacters}
	case dto.GenerateKindBeat:
		cmd = workspace.ExpandBeat{Model: req.Model, Preset: req.Preset, Input: req.Input, Selection: req.SelectedCharacters}
	default:
		cmd = workspace.SummarizeChapter{Model: req.Model}
	}

	output, err := h.workspace.Generate(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, cmd)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, &dto.GenerateResponse{Kind: req.Kind, Output: output})
}
