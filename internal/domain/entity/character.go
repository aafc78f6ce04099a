// Package entity 定义领域实体
package entity

import "time"

// Character 角色实体；同一故事内角色名允许重复
type Character struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StoryID   uint      `json:"story_id" gorm:"index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(120);not null"`
	Traits    string    `json:"traits" gorm:"type:text"`
	Backstory string    `json:"backstory" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Story *Story `json:"-" gorm:"foreignKey:StoryID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Character) TableName() string {
	return "characters"
}

// BelongsTo 检查角色是否属于指定故事
func (c *Character) BelongsTo(storyID uint) bool {
	return c.StoryID == storyID
}
