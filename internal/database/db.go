package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/storage-booking/internal/config"
)

// Open connects to MySQL with the settings in cfg and verifies the
// connection before returning it.
func Open(ctx context.Context, cfg config.MySQLConfig) (*sql.DB, error) {
	dc := mysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Pass
	dc.Net = "tcp"
	dc.Addr = cfg.Host + ":" + cfg.Port
	dc.DBName = cfg.Name
	// parseTime -> DATETIME scans into time.Time; loc=UTC keeps times consistent
	dc.ParseTime = true
	dc.Loc = time.UTC
	dc.Params = map[string]string{"charset": "utf8mb4"}

	db, err := sql.Open("mysql", dc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql %s: %w", dc.Addr, err)
	}
	return db, nil
}
