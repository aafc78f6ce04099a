package handler

import (
	"github.com/gin-gonic/gin"

	"story-engine/internal/application/content"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
)

// PlotHandler 情节笔记处理器
type PlotHandler struct {
	content *content.Service
}

// NewPlotHandler 创建情节笔记处理器
func NewPlotHandler(contentSvc *content.Service) *PlotHandler {
	return &PlotHandler{content: contentSvc}
}

// GetPlotNotes 获取情节笔记，未保存过时返回空笔记
func (h *PlotHandler) GetPlotNotes(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	notes, err := h.content.GetPlotNotes(c.Request.Context(), middleware.AccountID(c), storyID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, notes)
}

// SavePlotNotes 覆盖保存情节笔记
func (h *PlotHandler) SavePlotNotes(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.PlotNotesRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	notes, err := h.content.UpsertPlotNotes(c.Request.Context(), middleware.AccountID(c), storyID, req.Notes)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, notes)
}
