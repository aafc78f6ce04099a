// Package entity 定义领域实体
package entity

import "time"

// WorldCategory 世界观元素分类（封闭集合）
type WorldCategory string

const (
	WorldCategorySettings  WorldCategory = "Settings"
	WorldCategoryCultures  WorldCategory = "Cultures"
	WorldCategoryMagicTech WorldCategory = "Magic and Tech"
	WorldCategoryHistory   WorldCategory = "History"
	WorldCategoryRaces     WorldCategory = "Races"
)

// DefaultWorldCategory 未指定分类时使用
const DefaultWorldCategory = WorldCategorySettings

// WorldCategories 返回全部分类，顺序即展示顺序
func WorldCategories() []WorldCategory {
	return []WorldCategory{
		WorldCategorySettings,
		WorldCategoryCultures,
		WorldCategoryMagicTech,
		WorldCategoryHistory,
		WorldCategoryRaces,
	}
}

// Valid 检查分类是否属于封闭集合
func (c WorldCategory) Valid() bool {
	for _, known := range WorldCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// WorldElement 世界观元素
type WorldElement struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	ChapterID   uint          `json:"chapter_id" gorm:"index;not null"`
	Category    WorldCategory `json:"category" gorm:"type:varchar(50);not null"`
	Description string        `json:"description" gorm:"type:text"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Chapter *Chapter `json:"-" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (WorldElement) TableName() string {
	return "world_elements"
}

// BelongsTo 检查元素是否属于指定章节
func (w *WorldElement) BelongsTo(chapterID uint) bool {
	return w.ChapterID == chapterID
}
