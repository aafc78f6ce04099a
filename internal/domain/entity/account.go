// Package entity 定义领域实体
package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Account 账户实体
type Account struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(80);uniqueIndex;not null"`
	Email        *string   `json:"email,omitempty" gorm:"type:varchar(120);uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // 不在 JSON 中暴露
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Account) TableName() string {
	return "accounts"
}

// NewAccount 创建新账户，空邮箱存为 NULL 以免唯一索引冲突
func NewAccount(username, email string) *Account {
	a := &Account{Username: username}
	if email != "" {
		a.Email = &email
	}
	return a
}

// SetPassword 设置并散列密码
func (a *Account) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

// CheckPassword 校验密码
func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
