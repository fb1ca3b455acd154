package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the two tables the service needs.  reserved_seats and seats
// hold JSON arrays of seat numbers in booking order.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS coaches (
		id             BIGINT UNSIGNED NOT NULL PRIMARY KEY,
		total_seats    INT UNSIGNED    NOT NULL,
		row_width      INT UNSIGNED    NOT NULL,
		reserved_seats JSON            NOT NULL,
		updated_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS coach_bookings (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		reference  CHAR(36)        NOT NULL UNIQUE,
		coach_id   BIGINT UNSIGNED NOT NULL,
		seats      JSON            NOT NULL,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_coach_bookings_coach (coach_id, created_at),
		CONSTRAINT fk_coach_bookings_coach FOREIGN KEY (coach_id) REFERENCES coaches (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate applies the schema.  Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
