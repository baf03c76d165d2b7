package db

import (
	"context"
	"fmt"

	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/chethan81/stockmonitor-backend/pkg/security"
	"gorm.io/gorm/clause"
)

func allModels() []any {
	return []any{
		&models.User{},
		&models.StockItem{},
		&models.Sale{},
		&models.InvestmentTransaction{},
		&models.Wage{},
	}
}

// EnsureSchema idempotently creates the required entities and seeds the single
// administrative identity. Safe to call on every process start and from
// multiple processes concurrently: the seed is an insert guarded by the unique
// username index, so a concurrent start never produces a second admin and an
// existing admin's credential is never overwritten.
func EnsureSchema(ctx context.Context, conn *Conn, adminCfg config.AdminConfig, pwCfg config.PasswordConfig) error {
	if conn == nil {
		return pkgerrors.New(pkgerrors.CodeSchemaInit, "no connection")
	}

	if err := conn.DB().WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaInit, err, "migrating schema")
	}

	return seedAdmin(ctx, conn, adminCfg, pwCfg)
}

func seedAdmin(ctx context.Context, conn *Conn, adminCfg config.AdminConfig, pwCfg config.PasswordConfig) error {
	if adminCfg.Username == "" {
		return pkgerrors.New(pkgerrors.CodeSchemaInit, "admin username is required")
	}

	hash, err := security.HashPassword(adminCfg.DefaultPassword, pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaInit, err, "hashing admin credential")
	}

	admin := models.User{
		Username:     adminCfg.Username,
		PasswordHash: hash,
		Email:        adminCfg.Email,
	}

	res := conn.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(&admin)
	if res.Error != nil {
		if IsUniqueViolation(res.Error, "") {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeSchemaInit, res.Error, fmt.Sprintf("seeding %q user", adminCfg.Username))
	}
	return nil
}
