package db

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"lindas-hydro/internal/domain/model"
)

type SQLCHealthDBGateway struct {
	DB      *sql.DB
	timeout time.Duration
}

var _ HealthDBGateway = (*SQLCHealthDBGateway)(nil)

func NewSQLCHealthDBGateway(db *sql.DB) *SQLCHealthDBGateway {
	return &SQLCHealthDBGateway{DB: db, timeout: 2 * time.Second}
}

// Health pings the pool and reports its usage.
func (gateway *SQLCHealthDBGateway) Health() model.ComponentHealthStatus {
	ctx, cancel := context.WithTimeout(context.Background(), gateway.timeout)
	defer cancel()

	if err := gateway.DB.PingContext(ctx); err != nil {
		return model.Down(err)
	}

	stats := gateway.DB.Stats()
	return model.Up(map[string]string{
		"open_connections": strconv.Itoa(stats.OpenConnections),
		"in_use":           strconv.Itoa(stats.InUse),
		"idle":             strconv.Itoa(stats.Idle),
	})
}
