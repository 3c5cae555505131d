//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model"
	gormdb "lindas-hydro/internal/infra/database/gorm"
	"lindas-hydro/internal/testsupport"
)

func TestSQLCObservationGateway_Upsert(t *testing.T) {
	ctx := context.Background()
	gateway := NewSQLCObservationGateway(testsupport.Postgres(t))
	require.NoError(t, gateway.Migrate(ctx))
	require.NoError(t, gateway.Migrate(ctx))

	batch := []entity.Observation{
		{Timestamp: "t1", StationID: "2044", Discharge: "12.5", CollectionTime: "c1"},
		{Timestamp: "t1", StationID: "2112", CollectionTime: "c1"},
	}

	written, err := gateway.Upsert(ctx, batch)
	require.NoError(t, err)
	assert.EqualValues(t, 2, written)

	written, err = gateway.Upsert(ctx, append(batch, entity.Observation{Timestamp: "t2", StationID: "2044", CollectionTime: "c2"}))
	require.NoError(t, err)
	assert.EqualValues(t, 1, written)

	count, err := gateway.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestGormCollectionRunGateway(t *testing.T) {
	orm, err := gormdb.Open(testsupport.Postgres(t))
	require.NoError(t, err)

	gateway := NewGormCollectionRunGateway(orm)
	require.NoError(t, gateway.Migrate())

	last, err := gateway.Last()
	require.NoError(t, err)
	assert.Nil(t, last)

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, gateway.Save(entity.CollectionRun{ID: "run-1", StartedAt: started, Status: entity.RunSuccess, Appended: 4}))
	require.NoError(t, gateway.Save(entity.CollectionRun{ID: "run-2", StartedAt: started.Add(9 * time.Minute), Status: entity.RunNoNewRecords}))

	last, err = gateway.Last()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "run-2", last.ID)
	assert.Equal(t, entity.RunNoNewRecords, last.Status)
}

func TestSQLCHealthDBGateway(t *testing.T) {
	health := NewSQLCHealthDBGateway(testsupport.Postgres(t)).Health()

	assert.Equal(t, model.StatusUp, health.Status)
}
