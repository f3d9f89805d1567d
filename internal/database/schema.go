package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied statement by statement; every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS physical_units (
        id           CHAR(36)      NOT NULL PRIMARY KEY,
        unit_number  VARCHAR(64)   NOT NULL,
        actual_size  VARCHAR(64)   NOT NULL,
        location     VARCHAR(255)  NOT NULL,
        amenities    JSON          NOT NULL,
        base_price   DECIMAL(12,2) NOT NULL,
        status       VARCHAR(16)   NOT NULL DEFAULT 'available',
        created_at   DATETIME(6)   NOT NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS virtual_units (
        id               CHAR(36)      NOT NULL PRIMARY KEY,
        physical_unit_id CHAR(36)      NOT NULL,
        unit_type        VARCHAR(32)   NOT NULL,
        display_size     VARCHAR(64)   NOT NULL,
        display_name     VARCHAR(255)  NOT NULL,
        daily_price      DECIMAL(12,2) NOT NULL,
        weekly_price     DECIMAL(12,2) NOT NULL,
        monthly_price    DECIMAL(12,2) NOT NULL,
        amenities        JSON          NOT NULL,
        image_url        VARCHAR(1024) NULL,
        description      TEXT          NULL,
        created_at       DATETIME(6)   NOT NULL,
        KEY idx_virtual_units_type (unit_type),
        KEY idx_virtual_units_physical (physical_unit_id),
        CONSTRAINT fk_virtual_units_physical FOREIGN KEY (physical_unit_id)
            REFERENCES physical_units (id) ON DELETE CASCADE
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	// blocking_unit_id is only non-NULL for booked/maintenance rows, so the
	// unique key allows any number of non-blocking bookings per unit but at
	// most one blocking booking.
	`CREATE TABLE IF NOT EXISTS bookings (
        id               CHAR(36)      NOT NULL PRIMARY KEY,
        virtual_unit_id  CHAR(36)      NOT NULL,
        physical_unit_id CHAR(36)      NOT NULL,
        customer_name    VARCHAR(255)  NOT NULL,
        customer_email   VARCHAR(255)  NOT NULL,
        customer_phone   VARCHAR(64)   NOT NULL,
        payment_option   VARCHAR(32)   NOT NULL,
        pricing_period   VARCHAR(16)   NOT NULL,
        start_date       DATETIME(6)   NOT NULL,
        end_date         DATETIME(6)   NULL,
        total_price      DECIMAL(12,2) NOT NULL,
        status           VARCHAR(16)   NOT NULL,
        move_in_date     DATETIME(6)   NULL,
        special_requests TEXT          NULL,
        created_at       DATETIME(6)   NOT NULL,
        blocking_unit_id CHAR(36) GENERATED ALWAYS AS
            (IF(status IN ('booked', 'maintenance'), physical_unit_id, NULL)) STORED,
        UNIQUE KEY uq_bookings_blocking_unit (blocking_unit_id),
        KEY idx_bookings_physical (physical_unit_id),
        KEY idx_bookings_email (customer_email)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS image_assets (
        id          CHAR(36)      NOT NULL PRIMARY KEY,
        name        VARCHAR(255)  NOT NULL,
        url         VARCHAR(1024) NOT NULL,
        category    VARCHAR(32)   NOT NULL,
        tags        JSON          NOT NULL,
        description TEXT          NULL,
        created_at  DATETIME(6)   NOT NULL,
        KEY idx_image_assets_category (category)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS content_blocks (
        content_key VARCHAR(128) NOT NULL PRIMARY KEY,
        title       VARCHAR(255) NOT NULL,
        body        TEXT         NOT NULL,
        updated_at  DATETIME(6)  NOT NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS banners (
        id         CHAR(36)      NOT NULL PRIMARY KEY,
        title      VARCHAR(255)  NOT NULL,
        message    TEXT          NOT NULL,
        link_url   VARCHAR(1024) NULL,
        is_active  TINYINT(1)    NOT NULL DEFAULT 1,
        starts_at  DATETIME(6)   NULL,
        ends_at    DATETIME(6)   NULL,
        created_at DATETIME(6)   NOT NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS customers (
        id                 CHAR(36)      NOT NULL PRIMARY KEY,
        first_name         VARCHAR(128)  NOT NULL,
        last_name          VARCHAR(128)  NOT NULL,
        email              VARCHAR(255)  NOT NULL,
        phone              VARCHAR(64)   NOT NULL DEFAULT '',
        company            VARCHAR(255)  NOT NULL DEFAULT '',
        customer_type      VARCHAR(32)   NOT NULL DEFAULT 'individual',
        acquisition_source VARCHAR(64)   NOT NULL DEFAULT 'web',
        loyalty_points     BIGINT        NOT NULL DEFAULT 0,
        lifetime_points    BIGINT        NOT NULL DEFAULT 0,
        total_bookings     BIGINT        NOT NULL DEFAULT 0,
        lifetime_value     DECIMAL(14,2) NOT NULL DEFAULT 0,
        created_at         DATETIME(6)   NOT NULL,
        UNIQUE KEY uq_customers_email (email)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS loyalty_transactions (
        id          CHAR(36)     NOT NULL PRIMARY KEY,
        customer_id CHAR(36)     NOT NULL,
        points      BIGINT       NOT NULL,
        kind        VARCHAR(16)  NOT NULL,
        description VARCHAR(512) NOT NULL,
        booking_id  CHAR(36)     NULL,
        created_at  DATETIME(6)  NOT NULL,
        KEY idx_loyalty_customer (customer_id, created_at)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS payment_transactions (
        id             CHAR(36)      NOT NULL PRIMARY KEY,
        session_id     VARCHAR(255)  NOT NULL,
        booking_id     CHAR(36)      NOT NULL,
        customer_email VARCHAR(255)  NOT NULL,
        amount         DECIMAL(12,2) NOT NULL,
        currency       CHAR(3)       NOT NULL,
        status         VARCHAR(32)   NOT NULL,
        payment_status VARCHAR(32)   NOT NULL,
        points_awarded TINYINT(1)    NOT NULL DEFAULT 0,
        created_at     DATETIME(6)   NOT NULL,
        updated_at     DATETIME(6)   NOT NULL,
        UNIQUE KEY uq_payment_session (session_id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS api_keys (
        id           CHAR(36)      NOT NULL PRIMARY KEY,
        service      VARCHAR(32)   NOT NULL,
        key_name     VARCHAR(64)   NOT NULL,
        sealed_value VARBINARY(2048) NOT NULL,
        environment  VARCHAR(16)   NOT NULL,
        created_at   DATETIME(6)   NOT NULL,
        UNIQUE KEY uq_api_keys_service_name (service, key_name)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS analytics_events (
        id         CHAR(36)     NOT NULL PRIMARY KEY,
        session_id VARCHAR(128) NOT NULL,
        event_type VARCHAR(64)  NOT NULL,
        page       VARCHAR(255) NOT NULL DEFAULT '',
        unit_id    CHAR(36)     NULL,
        metadata   JSON         NULL,
        created_at DATETIME(6)  NOT NULL,
        KEY idx_events_session (session_id, created_at)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates every table the SQL store needs.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
