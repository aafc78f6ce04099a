package handler

import (
	"github.com/gin-gonic/gin"

	"story-engine/internal/application/content"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
)

// ChapterHandler 章节处理器
type ChapterHandler struct {
	content *content.Service
}

// NewChapterHandler 创建章节处理器
func NewChapterHandler(contentSvc *content.Service) *ChapterHandler {
	return &ChapterHandler{content: contentSvc}
}

// chapterPath 解析 :sid 与 :cid
func chapterPath(c *gin.Context) (storyID, chapterID uint, err error) {
	if storyID, err = dto.PathID(c, "sid"); err != nil {
		return 0, 0, err
	}
	if chapterID, err = dto.PathID(c, "cid"); err != nil {
		return 0, 0, err
	}
	return storyID, chapterID, nil
}

// ListChapters 按创建顺序列出章节
// @Summary 章节列表
// @Tags Chapters
// @Produce json
// @Param sid path int true "故事 ID"
// @Success 200 {object} dto.Response[[]entity.Chapter]
// @Router /v1/stories/{sid}/chapters [get]
func (h *ChapterHandler) ListChapters(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	chapters, err := h.content.ListChapters(c.Request.Context(), middleware.AccountID(c), storyID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, chapters)
}

// CreateChapter 新增章节
// @Summary 新增章节
// @Description 标题为空时命名为 "Chapter N"
// @Tags Chapters
// @Accept json
// @Produce json
// @Param sid path int true "故事 ID"
// @Param body body dto.CreateChapterRequest false "章节标题"
// @Success 201 {object} dto.Response[entity.Chapter]
// @Router /v1/stories/{sid}/chapters [post]
func (h *ChapterHandler) CreateChapter(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.CreateChapterRequest
	if c.Request.ContentLength != 0 {
		if err := dto.BindJSON(c, &req); err != nil {
			dto.Fail(c, err)
			return
		}
	}

	chapter, err := h.content.AddChapter(c.Request.Context(), middleware.AccountID(c), storyID, req.Title)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Created(c, chapter)
}

// GetChapter 获取章节
func (h *ChapterHandler) GetChapter(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	chapter, err := h.content.GetChapter(c.Request.Context(), middleware.AccountID(c), storyID, chapterID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, chapter)
}

// SaveChapter 覆盖保存章节标题、摘要与正文
func (h *ChapterHandler) SaveChapter(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	var req dto.SaveChapterRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	chapter, err := h.content.SaveChapterBody(c.Request.Context(), middleware.AccountID(c), storyID, chapterID, req.Title, req.Summary, req.Text)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, chapter)
}

// DeleteChapter 删除章节及其节拍、事件、世界观条目
func (h *ChapterHandler) DeleteChapter(c *gin.Context) {
	storyID, chapterID, err := chapterPath(c)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if err := h.content.DeleteChapter(c.Request.Context(), middleware.AccountID(c), storyID, chapterID); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}
