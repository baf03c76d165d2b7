package db

import (
	"context"
	"testing"

	"github.com/chethan81/stockmonitor-backend/pkg/config"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	"github.com/chethan81/stockmonitor-backend/pkg/security"
)

func testAdminConfig() config.AdminConfig {
	return config.AdminConfig{
		Username:        "admin",
		DefaultPassword: "admin123",
		Email:           "admin@example.com",
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestEnsureSchemaSeedsAdminOnce(t *testing.T) {
	c, err := NewConnector(unreachableConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new connector: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	conn, err := c.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := EnsureSchema(ctx, conn, testAdminConfig(), testPasswordConfig()); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := EnsureSchema(ctx, conn, testAdminConfig(), testPasswordConfig()); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	var admins []models.User
	if err := conn.DB().Where("username = ?", "admin").Find(&admins).Error; err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("expected exactly one admin, got %d", len(admins))
	}

	ok, err := security.VerifyPassword("admin123", admins[0].PasswordHash)
	if err != nil {
		t.Fatalf("verify seeded credential: %v", err)
	}
	if !ok {
		t.Fatal("seeded admin credential does not verify")
	}
}

func TestEnsureSchemaDoesNotOverwriteExistingAdmin(t *testing.T) {
	c, err := NewConnector(unreachableConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new connector: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	conn, err := c.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if err := EnsureSchema(ctx, conn, testAdminConfig(), testPasswordConfig()); err != nil {
		t.Fatalf("ensure: %v", err)
	}

	// Rotate the credential out of band, then rerun bootstrap.
	rotated, err := security.HashPassword("rotated-secret", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash rotated credential: %v", err)
	}
	if err := conn.DB().Model(&models.User{}).
		Where("username = ?", "admin").
		Update("password_hash", rotated).Error; err != nil {
		t.Fatalf("rotate credential: %v", err)
	}

	if err := EnsureSchema(ctx, conn, testAdminConfig(), testPasswordConfig()); err != nil {
		t.Fatalf("re-ensure: %v", err)
	}

	var admin models.User
	if err := conn.DB().Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	ok, err := security.VerifyPassword("rotated-secret", admin.PasswordHash)
	if err != nil {
		t.Fatalf("verify rotated credential: %v", err)
	}
	if !ok {
		t.Fatal("bootstrap overwrote a rotated credential")
	}
}

func TestEnsureSchemaRequiresAdminUsername(t *testing.T) {
	c, err := NewConnector(unreachableConfig(), nil, nil)
	if err != nil {
		t.Fatalf("new connector: %v", err)
	}
	defer c.Close()

	conn, err := c.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	err = EnsureSchema(context.Background(), conn, config.AdminConfig{DefaultPassword: "x"}, testPasswordConfig())
	if err == nil {
		t.Fatal("expected missing admin username to fail")
	}
}
