package handler

import (
	"github.com/gin-gonic/gin"

	"story-engine/internal/application/content"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
)

// CharacterHandler 角色处理器
type CharacterHandler struct {
	content *content.Service
}

// NewCharacterHandler 创建角色处理器
func NewCharacterHandler(contentSvc *content.Service) *CharacterHandler {
	return &CharacterHandler{content: contentSvc}
}

func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	characters, err := h.content.ListCharacters(c.Request.Context(), middleware.AccountID(c), storyID)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, characters)
}

func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	h.upsert(c, false)
}

func (h *CharacterHandler) UpdateCharacter(c *gin.Context) {
	h.upsert(c, true)
}

func (h *CharacterHandler) upsert(c *gin.Context, edit bool) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	in := content.CharacterInput{}
	if edit {
		if in.ID, err = dto.PathID(c, "chid"); err != nil {
			dto.Fail(c, err)
			return
		}
	}
	var req dto.CharacterRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}
	in.Name, in.Traits, in.Backstory = req.Name, req.Traits, req.Backstory

	character, err := h.content.UpsertCharacter(c.Request.Context(), middleware.AccountID(c), storyID, in)
	if err != nil {
		dto.Fail(c, err)
		return
	}
	if edit {
		dto.Success(c, character)
		return
	}
	dto.Created(c, character)
}

func (h *CharacterHandler) DeleteCharacter(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}
	characterID, err := dto.PathID(c, "chid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	if err := h.content.DeleteCharacter(c.Request.Context(), middleware.AccountID(c), storyID, characterID); err != nil {
		dto.Fail(c, err)
		return
	}
	dto.NoContent(c)
}

// SearchCharacters 角色名自动补全（不区分大小写的子串匹配）
// @Summary 角色名搜索
// @Tags Characters
// @Produce json
// @Param sid path int true "故事 ID"
// @Param query query string false "名称片段"
// @Success 200 {object} dto.Response[[]string]
// @Router /v1/stories/{sid}/characters/search [get]
func (h *CharacterHandler) SearchCharacters(c *gin.Context) {
	storyID, err := dto.PathID(c, "sid")
	if err != nil {
		dto.Fail(c, err)
		return
	}

	names, err := h.content.SearchCharacters(c.Request.Context(), middleware.AccountID(c), storyID, c.Query("query"))
	if err != nil {
		dto.Fail(c, err)
		return
	}
	dto.Success(c, names)
}
