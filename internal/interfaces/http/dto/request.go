package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "story-engine/pkg/errors"
)

// PathID 解析路径上的数字 ID
func PathID(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("invalid path parameter %s: %q", name, raw)
	}
	return uint(id), nil
}

// BindJSON 绑定并校验 JSON 请求体，失败时返回 Validation 错误
func BindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return apperrors.Validation("invalid request body: %s", err.Error())
	}
	return nil
}

// CreateStoryRequest 创建/更新故事请求
type CreateStoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateChapterRequest 新增章节请求，标题为空时自动命名
type CreateChapterRequest struct {
	Title string `json:"title"`
}

// SaveChapterRequest 保存章节正文（整体覆盖）
type SaveChapterRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Text    string `json:"text"`
}

// CharacterRequest 角色请求
type CharacterRequest struct {
	Name      string `json:"name"`
	Traits    string `json:"traits"`
	Backstory string `json:"backstory"`
}

// PlotNotesRequest 情节笔记请求
type PlotNotesRequest struct {
	Notes string `json:"notes"`
}

// OrderedItemRequest 场景节拍/关键事件请求；order 缺省时新增取 1，编辑保留原值
type OrderedItemRequest struct {
	Description string `json:"description"`
	Order       *int   `json:"order"`
}

// WorldElementRequest 世界观条目请求
type WorldElementRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// 生成类型
const (
	GenerateKindProse   = "prose"
	GenerateKindBeat    = "beat"
	GenerateKindSummary = "summary"
)

// GenerateRequest 单次生成请求
type GenerateRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=prose beat summary"`
	Model  string `json:"model"`
	Preset string `json:"preset"`
	Input  string `json:"input"`
	// SelectedCharacters 缺省（null）时按 input 自动识别角色
	SelectedCharacters []uint `json:"selected_characters"`
}

// GenerateResponse 生成结果
type GenerateResponse struct {
	Kind   string `json:"kind"`
	Output string `json:"output"`
}

// ModelsResponse 可选模型列表
type ModelsResponse struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}
