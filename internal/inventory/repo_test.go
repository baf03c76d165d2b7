package inventory

import (
	"context"
	"testing"

	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

// A dropped connection must classify as a retryable storage failure, the same
// way the ledger and wages repositories report it, not as a raw driver error.
func TestRepositoryClassifiesDriverFailures(t *testing.T) {
	connector := newTestConnector(t)
	ctx := context.Background()

	conn, err := connector.Acquire(ctx)
	require.NoError(t, err)

	sqlDB, err := conn.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	repo := NewRepository(conn.DB())

	err = repo.CreateItem(ctx, &models.StockItem{Name: "Widget"})
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable), "got %v", err)

	_, err = repo.FindItem(ctx, 1)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable), "got %v", err)

	err = repo.SaveItem(ctx, &models.StockItem{ID: 1, Name: "Widget"})
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable), "got %v", err)

	_, err = repo.ListSales(ctx)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable), "got %v", err)
}
