// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// AccountRepository 账户仓储实现
type AccountRepository struct {
	client *Client
}

// NewAccountRepository 创建账户仓储
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{client: client}
}

// Create 创建账户
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	ctx, span := tracer.Start(ctx, "postgres.AccountRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(account).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取账户
func (r *AccountRepository) GetByID(ctx context.Context, id uint) (*entity.Account, error) {
	ctx, span := tracer.Start(ctx, "postgres.AccountRepository.GetByID")
	defer span.End()

	return r.first(ctx, "id = ?", id)
}

// GetByUsername 根据用户名获取账户
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	ctx, span := tracer.Start(ctx, "postgres.AccountRepository.GetByUsername")
	defer span.End()

	return r.first(ctx, "username = ?", username)
}

// GetByEmail 根据邮箱获取账户
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ctx, span := tracer.Start(ctx, "postgres.AccountRepository.GetByEmail")
	defer span.End()

	return r.first(ctx, "email = ?", email)
}

func (r *AccountRepository) first(ctx context.Context, query string, args ...any) (*entity.Account, error) {
	db := getDB(ctx, r.client.db)
	var account entity.Account
	if err := db.Where(query, args...).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}
