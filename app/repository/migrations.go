package repository

import "context"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS payments (
		transaction_id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_number VARCHAR(191) NOT NULL,
		first_name VARCHAR(255) NOT NULL,
		last_name VARCHAR(255) NOT NULL,
		zip_code CHAR(5) NOT NULL,
		encrypted_card_number VARCHAR(512) NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_payments_order_number (order_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS webhooks (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		url VARCHAR(768) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_webhooks_url (url)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables used by the MySQL repositories.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
