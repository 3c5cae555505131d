package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lindas-hydro/internal/domain/entity"
)

type SQLCObservationGateway struct {
	DB *sql.DB
}

var _ ObservationGateway = (*SQLCObservationGateway)(nil)

func NewSQLCObservationGateway(db *sql.DB) *SQLCObservationGateway {
	return &SQLCObservationGateway{DB: db}
}

func (gateway *SQLCObservationGateway) Migrate(ctx context.Context) error {
	_, err := gateway.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS hydro_observations (
			station_id        TEXT NOT NULL,
			measured_at       TEXT NOT NULL,
			discharge         TEXT NOT NULL DEFAULT '',
			water_level       TEXT NOT NULL DEFAULT '',
			danger_level      TEXT NOT NULL DEFAULT '',
			water_temperature TEXT NOT NULL DEFAULT '',
			collection_time   TEXT NOT NULL,
			PRIMARY KEY (station_id, measured_at)
		)`)
	return err
}

func (gateway *SQLCObservationGateway) Upsert(ctx context.Context, observations []entity.Observation) (written int64, err error) {
	if len(observations) == 0 {
		return 0, nil
	}

	tx, err := gateway.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO hydro_observations
			(station_id, measured_at, discharge, water_level, danger_level, water_temperature, collection_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (station_id, measured_at) DO NOTHING`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	for _, o := range observations {
		result, execErr := stmt.ExecContext(ctx, o.StationID, o.Timestamp, o.Discharge, o.WaterLevel,
			o.DangerLevel, o.WaterTemperature, o.CollectionTime)
		if execErr != nil {
			return 0, fmt.Errorf("insert %s: %w", o.Key(), execErr)
		}
		affected, execErr := result.RowsAffected()
		if execErr != nil {
			return 0, execErr
		}
		written += affected
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// CountAll returns the number of stored observations
func (gateway *SQLCObservationGateway) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := gateway.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM hydro_observations`).Scan(&count)
	return count, err
}
