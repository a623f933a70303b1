package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-click-counter/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-click-counter/pkg/config"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := Open(ctx, &config.Config{StoreDriver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	assert.NoError(t, closeFn())

	store, closeFn, err = Open(ctx, &config.Config{StoreDriver: "sqlite", DatabaseURL: "file:opentest?mode=memory&cache=shared"})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.SQLiteRepository{}, store)
	assert.NoError(t, closeFn())

	_, _, err = Open(ctx, &config.Config{StoreDriver: "dynamo"})
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}
