// Package entity 定义领域实体
package entity

import "time"

// PlotNotes 情节笔记，每个故事至多一条
type PlotNotes struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"story_id" gorm:"uniqueIndex;not null"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Story *Story `json:"-" gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (PlotNotes) TableName() string {
	return "plot_notes"
}
