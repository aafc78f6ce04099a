// Package entity 定义领域实体
package entity

import "time"

// KeyEvent 关键事件，结构与 SceneBeat 相同
type KeyEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ChapterID   uint      `json:"chapter_id" gorm:"index;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Order       int       `json:"order" gorm:"column:sort_order;not null;default:1"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Chapter *Chapter `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (KeyEvent) TableName() string {
	return "key_events"
}

// BelongsTo 检查事件是否属于指定章节
func (e *KeyEvent) BelongsTo(chapterID uint) bool {
	return e.ChapterID == chapterID
}
