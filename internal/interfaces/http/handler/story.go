package handler

import (
	"github.com/gin-gonic/gin"

	"story-engine/internal/application/content"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
)

// StoryHandler 故事处理器
type StoryHandler struct {
	content *content.Service
}

// NewStoryHandler 创建故事处理器
func NewStoryHandler(contentSvc *content.Service) *StoryHandler {
	return &StoryHandler{content: contentSvc}
}

// ListStories 列出当前账户的故事
// @Summary 故事列表
// @Tags Stories
// @Produce json
// @Success 200 {object} dto.Response[[]entity.Story]
// @Router /v1/stories [get]
func (h *StoryHandler) ListStories(c *gin.Context) {
	stories, err := h.content.ListStories(c.Request.Context(), middleware.AccountID(c))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, stories)
}

// CreateStory 创建故事（同时创建 Chapter 1）
// @Summary 创建故事
// @Tags Stories
// @Accept json
// @Produce json
// @Param body body dto.CreateStoryRequest true "故事信息"
// @Success 201 {object} dto.Response[entity.Story]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/stories [post]
func (h *StoryHandler) CreateStory(c *gin.Context) {
	var req dto.CreateStoryRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	story, err := h.content.CreateStory(c.Request.Context(), middleware.AccountID(c), req.Title, req.Description)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, story)
}

// GetStory 获取故事
func (h *StoryHandler) GetStory(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	story, err := h.content.GetStory(c.Request.Context(), middleware.AccountID(c), storyID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, story)
}

// UpdateStory 更新故事标题与简介
func (h *StoryHandler) UpdateStory(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.CreateStoryRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	story, err := h.content.UpdateStory(c.Request.Context(), middleware.AccountID(c), storyID, req.Title, req.Description)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, story)
}

// DeleteStory 删除故事及其全部内容
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if err := h.content.DeleteStory(c.Request.Context(), middleware.AccountID(c), storyID); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}
