package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the DDL for the four inventory tables.  Children carry
// ON DELETE CASCADE foreign keys so removing a room removes its
// manuals, appliances and maintenance tasks in one statement.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id          CHAR(36) PRIMARY KEY,
		name        VARCHAR(100) NOT NULL,
		description VARCHAR(500) NULL,
		icon        VARCHAR(32)  NULL,
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS manuals (
		id          CHAR(36) PRIMARY KEY,
		room_id     CHAR(36) NOT NULL,
		title       VARCHAR(200) NOT NULL,
		description VARCHAR(500) NULL,
		filename    VARCHAR(255) NOT NULL,
		file_path   VARCHAR(512) NOT NULL,
		file_size   BIGINT NOT NULL,
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL,
		CONSTRAINT fk_manuals_room FOREIGN KEY (room_id)
			REFERENCES rooms (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS appliances (
		id                  CHAR(36) PRIMARY KEY,
		room_id             CHAR(36) NOT NULL,
		name                VARCHAR(100) NOT NULL,
		brand               VARCHAR(100) NULL,
		model_number        VARCHAR(100) NULL,
		serial_number       VARCHAR(100) NULL,
		purchase_date       DATETIME NULL,
		warranty_expiration DATETIME NULL,
		notes               VARCHAR(1000) NULL,
		created_at          DATETIME NOT NULL,
		updated_at          DATETIME NOT NULL,
		CONSTRAINT fk_appliances_room FOREIGN KEY (room_id)
			REFERENCES rooms (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS maintenance (
		id             CHAR(36) PRIMARY KEY,
		room_id        CHAR(36) NOT NULL,
		task_name      VARCHAR(100) NOT NULL,
		description    VARCHAR(500) NULL,
		frequency      ENUM('one-time','weekly','monthly','yearly') NOT NULL,
		last_completed DATETIME NULL,
		created_at     DATETIME NOT NULL,
		updated_at     DATETIME NOT NULL,
		CONSTRAINT fk_maintenance_room FOREIGN KEY (room_id)
			REFERENCES rooms (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the inventory tables when they do not exist.
// Safe to run on every start.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
