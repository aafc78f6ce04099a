// Package entity 定义领域实体
package entity

import "time"

// Story 故事实体，归属于唯一账户
type Story struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AccountID   uint      `json:"account_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Account *Account `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (Story) TableName() string {
	return "stories"
}

// NewStory 创建新故事
func NewStory(accountID uint, title, description string) *Story {
	return &Story{
		AccountID:   accountID,
		Title:       title,
		Description: description,
	}
}

// OwnedBy 检查故事是否属于指定账户
func (s *Story) OwnedBy(accountID uint) bool {
	return s.AccountID == accountID
}
