// Package entity 定义领域实体
package entity

import (
	"fmt"
	"time"
)

// Chapter 章节实体，序号由创建顺序（ID 升序）隐式决定
type Chapter struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"story_id" gorm:"index;not null"`
	Title     string    `json:"title" gorm:"type:varchar(255)"`
	Text      string    `json:"text" gorm:"type:text"`
	Summary   string    `json:"summary" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Story *Story `json:"-" gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Chapter) TableName() string {
	return "chapters"
}

// DefaultChapterTitle 根据已有章节数计算默认标题
func DefaultChapterTitle(existing int) string {
	return fmt.Sprintf("Chapter %d", existing+1)
}

// NewChapter 创建新章节，正文与摘要为空
func NewChapter(storyID uint, title string) *Chapter {
	return &Chapter{
		StoryID: storyID,
		Title:   title,
	}
}

// BelongsTo 检查章节是否属于指定故事
func (c *Chapter) BelongsTo(storyID uint) bool {
	return c.StoryID == storyID
}

// SetBody 整体覆盖标题、摘要与正文
func (c *Chapter) SetBody(title, summary, text string) {
	c.Title = title
	c.Summary = summary
	c.Text = text
}
