// Package postgres 提供关系型数据库访问层实现（生产使用 PostgreSQL，开发与测试可切换为 SQLite）
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"story-engine/internal/config"
	"story-engine/internal/domain/entity"
)

var tracer = otel.Tracer("postgres")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Client 数据库客户端（GORM 版本）
type Client struct {
	db     *gorm.DB
	driver string
}

// NewClient 根据配置的方言创建数据库客户端
func NewClient(cfg *config.DatabaseConfig) (*Client, error) {
	gormConfig := &gorm.Config{
		Logger: newGormLogger(cfg.SlowThreshold),
	}

	var (
		dialector gorm.Dialector
		driver    = strings.ToLower(cfg.Driver)
	)
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.Postgres.DSN())
	case DriverSQLite, "":
		driver = DriverSQLite
		dialector = sqlite.Open(sqliteDSN(cfg.SQLite.Path))
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite 单写者；内存库每个连接都是独立数据库
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.Postgres.ConnMaxIdleTime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{
		db:     db,
		driver: driver,
	}, nil
}

// sqliteDSN 为 SQLite 连接串开启外键约束
func sqliteDSN(path string) string {
	if path == "" {
		path = ":memory:"
	}
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// Models 返回需要迁移的全部模型（按依赖顺序）
func Models() []any {
	return []any{
		&entity.Account{},
		&entity.Story{},
		&entity.Chapter{},
		&entity.Character{},
		&entity.PlotNotes{},
		&entity.SceneBeat{},
		&entity.KeyEvent{},
		&entity.WorldElement{},
	}
}

// AutoMigrate 创建或更新表结构
func (c *Client) AutoMigrate(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.AutoMigrate")
	defer span.End()

	if err := c.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// DB 获取 GORM DB 实例
func (c *Client) DB() *gorm.DB {
	return c.db
}

// Driver 返回当前方言
func (c *Client) Driver() string {
	return c.driver
}

// SqlDB 获取底层 sql.DB（用于健康检查等）
func (c *Client) SqlDB() (*sql.DB, error) {
	return c.db.DB()
}

// Close 关闭数据库连接
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck 健康检查
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "postgres.HealthCheck")
	defer span.End()

	var result int
	if err := c.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}
