// Package entity 定义领域实体
package entity

import "time"

// DefaultOrder 未指定排序值时使用
const DefaultOrder = 1

// SceneBeat 场景节拍；Order 原样保存，允许重复与间隔
type SceneBeat struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChapterID   uint      `json:"chapter_id" gorm:"index;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Order       int       `json:"order" gorm:"column:sort_order;not null;default:1"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Chapter *Chapter `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (SceneBeat) TableName() string {
	return "scene_beats"
}

// BelongsTo 检查节拍是否属于指定章节
func (b *SceneBeat) BelongsTo(chapterID uint) bool {
	return b.ChapterID == chapterID
}
