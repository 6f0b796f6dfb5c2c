package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"boataround-scraper/models"
	"boataround-scraper/utils"
)

// PostgresWriter persists cleaned listings to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter. The database may still be
// starting up, so the initial ping is retried.
func NewPostgresWriter(dsn string, logger *utils.Logger) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	ping := &utils.RetryConfig{MaxAttempts: 10, BaseDelay: 2 * time.Second, Logger: logger}
	if err := ping.Do("postgres-ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS boat_listings (
			id          SERIAL PRIMARY KEY,
			link        TEXT          UNIQUE NOT NULL,
			boat_name   TEXT          NOT NULL DEFAULT '',
			boat_length NUMERIC(6,2)  NOT NULL DEFAULT 0,
			price       NUMERIC(12,2) NOT NULL DEFAULT 0,
			check_in    DATE,
			check_out   DATE
		);

		CREATE INDEX IF NOT EXISTS idx_boat_listings_price    ON boat_listings(price);
		CREATE INDEX IF NOT EXISTS idx_boat_listings_check_in ON boat_listings(check_in);
	`)
	return err
}

// Clear deletes all existing listings from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM boat_listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// Write batch-inserts ALL cleaned listings, clearing old data first.
func (pw *PostgresWriter) Write(listings []*models.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, l := range batch {
		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			l.Link, l.BoatName, l.Length, l.Price,
			nullableDate(l.CheckIn), nullableDate(l.CheckOut))
	}

	query := fmt.Sprintf(`
		INSERT INTO boat_listings (link, boat_name, boat_length, price, check_in, check_out)
		VALUES %s
		ON CONFLICT (link) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func nullableDate(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored listings — used by the insight service.
func (pw *PostgresWriter) FetchAll() ([]*models.Listing, error) {
	rows, err := pw.db.Query(`
		SELECT id, link, boat_name, boat_length, price, check_in, check_out
		FROM boat_listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.Listing
	for rows.Next() {
		l := &models.Listing{}
		var checkIn, checkOut sql.NullTime
		if err := rows.Scan(
			&l.ID, &l.Link, &l.BoatName, &l.Length, &l.Price,
			&checkIn, &checkOut,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		l.CheckIn = checkIn.Time
		l.CheckOut = checkOut.Time
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
