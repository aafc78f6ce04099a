package handler

import (
	"github.com/gin-gonic/gin"

	"story-engine/internal/application/content"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
)

// OutlineHandler 章节大纲处理器：场景节拍、关键事件与世界观条目
type OutlineHandler struct {
	content *content.Service
}

// NewOutlineHandler 创建章节大纲处理器
func NewOutlineHandler(contentSvc *content.Service) *OutlineHandler {
	return &OutlineHandler{content: contentSvc}
}

// itemPath 解析 :sid、:cid 与条目 ID
func itemPath(c *gin.Context, name string) (storyID, chapterID, itemID uint, err error) {
	if storyID, chapterID, err = chapterPath(c); err != nil {
		return 0, 0, 0, err
	}
	if itemID, err = dto.PathID(c, name); err != nil {
		return 0, 0, 0, err
	}
	return storyID, chapterID, itemID, nil
}

// ListSceneBeats 按 order 升序列出节拍
// @Summary 场景节拍列表
// @Tags Outline
// @Produce json
// @Param sid path int true "故事 ID"
// @Param cid path int true "章节 ID"
// @Success 200 {object} dto.Response[[]entity.SceneBeat]
// @Router /v1/stories/{sid}/chapters/{cid}/beats [get]
func (h *OutlineHandler) ListSceneBeats(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	beats, err := h.content.ListSceneBeats(c.Request.Context(), middleware.AccountID(c), storyID, chapterID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, beats)
}

func (h *OutlineHandler) AddSceneBeat(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.OrderedItemRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	beat, err := h.content.AddSceneBeat(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, req.Description, req.Order)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, beat)
}

func (h *OutlineHandler) EditSceneBeat(c *gin.Context) {
	storyID, chapterID, beatID, err := itemPath(c, "bid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.OrderedItemRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	beat, err := h.content.EditSceneBeat(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, beatID, req.Description, req.Order)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, beat)
}

func (h *OutlineHandler) DeleteSceneBeat(c *gin.Context) {
	storyID, chapterID, beatID, err := itemPath(c, "bid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if err := h.content.DeleteSceneBeat(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, beatID); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}

// ListKeyEvents 按 order 升序列出关键事件
func (h *OutlineHandler) ListKeyEvents(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	events, err := h.content.ListKeyEvents(c.Request.Context(), middleware.AccountID(c), storyID, chapterID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, events)
}

func (h *OutlineHandler) AddKeyEvent(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.OrderedItemRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	event, err := h.content.AddKeyEvent(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, req.Description, req.Order)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, event)
}

func (h *OutlineHandler) EditKeyEvent(c *gin.Context) {
	storyID, chapterID, eventID, err := itemPath(c, "eid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.OrderedItemRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	event, err := h.content.EditKeyEvent(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, eventID, req.Description, req.Order)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, event)
}

func (h *OutlineHandler) DeleteKeyEvent(c *gin.Context) {
	storyID, chapterID, eventID, err := itemPath(c, "eid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if err := h.content.DeleteKeyEvent(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, eventID); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}

// ListWorldElements 列出章节的世界观条目
func (h *OutlineHandler) ListWorldElements(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	elements, err := h.content.ListWorldElements(c.Request.Context(), middleware.AccountID(c), storyID, chapterID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, elements)
}

// AddWorldElement 新增世界观条目，分类为空时归入 Settings
func (h *OutlineHandler) AddWorldElement(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.WorldElementRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	element, err := h.content.AddWorldElement(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, req.Category, req.Description)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, element)
}

func (h *OutlineHandler) EditWorldElement(c *gin.Context) {
	storyID, chapterID, elementID, err := itemPath(c, "wid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.WorldElementRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	element, err := h.content.EditWorldElement(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, elementID, req.Category, req.Description)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, element)
}
