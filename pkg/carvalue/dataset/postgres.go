package dataset

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/nekruzvatanshoev/carvalue/pkg/carvalue/dal"
)

const defaultTable = "listings"

// PostgresSource reads listings from a table populated by PostgresWriter.
type PostgresSource struct {
	DSN   string
	Table string
}

func (s PostgresSource) Name() string { return "postgres:" + s.table() }

func (s PostgresSource) table() string {
	if s.Table == "" {
		return defaultTable
	}
	return s.Table
}

func (s PostgresSource) Read() ([]dal.Listing, error) {
	db, err := sql.Open("postgres", s.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	rows, err := db.Query(fmt.Sprintf(`
		SELECT brand, model_name, model_variant, year, car_type, fuel_type,
		       transmission, owner, kilometers, state, accidental, price
		FROM %s
		ORDER BY id
	`, pq.QuoteIdentifier(s.table())))
	if err != nil {
		return nil, fmt.Errorf("postgres: query listings: %w", err)
	}
	defer rows.Close()

	var listings []dal.Listing
	for rows.Next() {
		var l dal.Listing
		if err := rows.Scan(
			&l.Brand, &l.ModelName, &l.ModelVariant, &l.Year, &l.CarType, &l.FuelType,
			&l.Transmission, &l.Owner, &l.Kilometers, &l.State, &l.Accidental, &l.Price,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate listings: %w", err)
	}
	return listings, nil
}

// PostgresWriter loads listings into PostgreSQL for use with PostgresSource.
type PostgresWriter struct {
	db    *sql.DB
	table string
}

// NewPostgresWriter connects, creates the listings table if needed and
// returns a ready writer.
func NewPostgresWriter(dsn, table string) (*PostgresWriter, error) {
	if table == "" {
		table = defaultTable
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	pw := &PostgresWriter{db: db, table: table}
	if err := pw.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]s (
			id            SERIAL PRIMARY KEY,
			brand         TEXT          NOT NULL,
			model_name    TEXT          NOT NULL,
			model_variant TEXT          NOT NULL,
			year          INTEGER       NOT NULL,
			car_type      TEXT          NOT NULL,
			fuel_type     TEXT          NOT NULL,
			transmission  TEXT          NOT NULL,
			owner         TEXT          NOT NULL,
			kilometers    INTEGER       NOT NULL,
			state         TEXT          NOT NULL,
			accidental    TEXT          NOT NULL,
			price         NUMERIC(14,2) NOT NULL
		);

		CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s(brand, model_name);
	`, pq.QuoteIdentifier(pw.table), pq.QuoteIdentifier("idx_"+pw.table+"_brand_model")))
	return err
}

// Replace clears the table and inserts listings in batches, in one transaction.
func (pw *PostgresWriter) Replace(listings []dal.Listing) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + pq.QuoteIdentifier(pw.table)); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	const batchSize = 200
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		query, args := insertBatch(pq.QuoteIdentifier(pw.table), listings[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert batch at %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(table string, batch []dal.Listing) (string, []interface{}) {
	const cols = 12
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		ph := make([]string, cols)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", idx*cols+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs,
			l.Brand, l.ModelName, l.ModelVariant, l.Year, l.CarType, l.FuelType,
			l.Transmission, l.Owner, l.Kilometers, l.State, l.Accidental, l.Price)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (brand, model_name, model_variant, year, car_type, fuel_type,
		                transmission, owner, kilometers, state, accidental, price)
		VALUES %s
	`, table, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
