package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/masfaiz-code/track-emas-api/internal/application/ports"
	"github.com/masfaiz-code/track-emas-api/internal/domain/models"
)

// Adapter implements the HistoryStore interface for PostgreSQL
type Adapter struct {
	db *sql.DB
}

// New creates a new PostgreSQL adapter and ensures the schema exists
func New(dsn string) (ports.HistoryStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Adapter{
		db: db,
	}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS gold_prices (
			id            BIGSERIAL PRIMARY KEY,
			snapshot_id   TEXT NOT NULL,
			vendor        TEXT NOT NULL,
			weight        DOUBLE PRECISION NOT NULL,
			selling_price BIGINT,
			buyback_price BIGINT,
			base_price    BIGINT,
			price_date    DATE NOT NULL,
			source        TEXT NOT NULL,
			scraped_at    TIMESTAMPTZ NOT NULL,
			UNIQUE (vendor, weight, price_date)
		)`,
		`CREATE TABLE IF NOT EXISTS price_changes (
			id             BIGSERIAL PRIMARY KEY,
			vendor         TEXT NOT NULL,
			weight         DOUBLE PRECISION NOT NULL,
			price_date     DATE NOT NULL,
			previous_price BIGINT NOT NULL,
			current_price  BIGINT NOT NULL,
			change_amount  BIGINT NOT NULL,
			change_percent DOUBLE PRECISION,
			trend          TEXT NOT NULL,
			UNIQUE (vendor, weight, price_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_gold_prices_date ON gold_prices (price_date)`,
		`CREATE INDEX IF NOT EXISTS idx_price_changes_date ON price_changes (price_date)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveSnapshot persists the records of a snapshot, upserting on
// (vendor, weight, price_date)
func (a *Adapter) SaveSnapshot(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil || len(snapshot.Records) == 0 {
		return nil
	}

	query := `INSERT INTO gold_prices (snapshot_id, vendor, weight, selling_price, buyback_price, base_price, price_date, source, scraped_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (vendor, weight, price_date) DO UPDATE SET
				snapshot_id = EXCLUDED.snapshot_id,
				selling_price = EXCLUDED.selling_price,
				buyback_price = EXCLUDED.buyback_price,
				base_price = EXCLUDED.base_price,
				scraped_at = EXCLUDED.scraped_at`

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.PersistenceError{Op: "save snapshot", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return &models.PersistenceError{Op: "save snapshot", Err: err}
	}
	defer stmt.Close()

	for _, rec := range snapshot.Records {
		_, err := stmt.ExecContext(ctx, snapshot.ID, rec.Vendor, rec.Weight,
			nullInt(rec.SellingPrice), nullInt(rec.BuybackPrice), nullInt(rec.Price),
			rec.Date, snapshot.Source, snapshot.ScrapedAt)
		if err != nil {
			return &models.PersistenceError{Op: "save snapshot", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.PersistenceError{Op: "save snapshot", Err: err}
	}
	return nil
}

// LatestSnapshotBefore returns the most recent persisted snapshot
// dated strictly before the given day, or nil when none exists
func (a *Adapter) LatestSnapshotBefore(ctx context.Context, day time.Time) (*models.Snapshot, error) {
	var latest time.Time
	err := a.db.QueryRowContext(ctx,
		`SELECT price_date FROM gold_prices WHERE price_date < $1 ORDER BY price_date DESC LIMIT 1`,
		day.Format("2006-01-02")).Scan(&latest)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &models.PersistenceError{Op: "load latest snapshot", Err: err}
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT snapshot_id, vendor, weight, selling_price, buyback_price, base_price, price_date, source, scraped_at
		 FROM gold_prices
		 WHERE price_date = $1
		 ORDER BY vendor, weight`, latest)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load latest snapshot", Err: err}
	}
	defer rows.Close()

	snapshot := &models.Snapshot{}
	for rows.Next() {
		var (
			rec                    models.GoldPrice
			selling, buyback, base sql.NullInt64
			date                   time.Time
		)
		err := rows.Scan(&snapshot.ID, &rec.Vendor, &rec.Weight,
			&selling, &buyback, &base, &date, &snapshot.Source, &snapshot.ScrapedAt)
		if err != nil {
			return nil, &models.PersistenceError{Op: "load latest snapshot", Err: err}
		}
		rec.Unit = "gram"
		rec.SellingPrice = fromNullInt(selling)
		rec.BuybackPrice = fromNullInt(buyback)
		rec.Price = fromNullInt(base)
		rec.Date = date.Format("2006-01-02")
		snapshot.Records = append(snapshot.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.PersistenceError{Op: "load latest snapshot", Err: err}
	}

	if len(snapshot.Records) == 0 {
		return nil, nil
	}
	return snapshot, nil
}

// SaveChanges persists computed price changes, upserting on
// (vendor, weight, price_date)
func (a *Adapter) SaveChanges(ctx context.Context, changes []models.PriceChange) error {
	if len(changes) == 0 {
		return nil
	}

	query := `INSERT INTO price_changes (vendor, weight, price_date, previous_price, current_price, change_amount, change_percent, trend)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (vendor, weight, price_date) DO UPDATE SET
				previous_price = EXCLUDED.previous_price,
				current_price = EXCLUDED.current_price,
				change_amount = EXCLUDED.change_amount,
				change_percent = EXCLUDED.change_percent,
				trend = EXCLUDED.trend`

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return &models.PersistenceError{Op: "save changes", Err: err}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return &models.PersistenceError{Op: "save changes", Err: err}
	}
	defer stmt.Close()

	for _, c := range changes {
		var percent sql.NullFloat64
		if c.ChangePercent != nil {
			percent = sql.NullFloat64{Float64: *c.ChangePercent, Valid: true}
		}
		_, err := stmt.ExecContext(ctx, c.Vendor, c.Weight, c.PriceDate,
			c.PreviousPrice, c.CurrentPrice, c.ChangeAmount, percent, string(c.Trend))
		if err != nil {
			return &models.PersistenceError{Op: "save changes", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.PersistenceError{Op: "save changes", Err: err}
	}
	return nil
}

// Changes retrieves persisted price changes for one day
func (a *Adapter) Changes(ctx context.Context, q models.ChangeQuery) ([]models.PriceChange, error) {
	query := `SELECT vendor, weight, price_date, previous_price, current_price, change_amount, change_percent, trend
			  FROM price_changes
			  WHERE price_date = $1`
	args := []interface{}{q.Day.Format("2006-01-02")}

	if q.Vendor != "" {
		args = append(args, "%"+q.Vendor+"%")
		query += fmt.Sprintf(" AND vendor ILIKE $%d", len(args))
	}
	if q.Trend != "" {
		args = append(args, string(q.Trend))
		query += fmt.Sprintf(" AND trend = $%d", len(args))
	}
	query += " ORDER BY change_percent DESC NULLS LAST"

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load changes", Err: err}
	}
	defer rows.Close()

	var changes []models.PriceChange
	for rows.Next() {
		var (
			c       models.PriceChange
			date    time.Time
			percent sql.NullFloat64
			trend   string
		)
		err := rows.Scan(&c.Vendor, &c.Weight, &date,
			&c.PreviousPrice, &c.CurrentPrice, &c.ChangeAmount, &percent, &trend)
		if err != nil {
			return nil, &models.PersistenceError{Op: "load changes", Err: err}
		}
		c.PriceDate = date.Format("2006-01-02")
		c.Trend = models.Trend(trend)
		if percent.Valid {
			p := percent.Float64
			c.ChangePercent = &p
		}
		changes = append(changes, c)
	}

	return changes, rows.Err()
}

// History retrieves persisted price records over the last q.Days days
func (a *Adapter) History(ctx context.Context, q models.HistoryQuery) ([]models.GoldPrice, error) {
	since := time.Now().AddDate(0, 0, -q.Days).Format("2006-01-02")

	query := `SELECT vendor, weight, selling_price, buyback_price, base_price, price_date
			  FROM gold_prices
			  WHERE price_date >= $1`
	args := []interface{}{since}

	if q.Vendor != "" {
		args = append(args, "%"+q.Vendor+"%")
		query += fmt.Sprintf(" AND vendor ILIKE $%d", len(args))
	}
	if q.Weight != nil {
		args = append(args, *q.Weight)
		query += fmt.Sprintf(" AND weight = $%d", len(args))
	}
	query += " ORDER BY price_date DESC, vendor, weight"

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load history", Err: err}
	}
	defer rows.Close()

	var records []models.GoldPrice
	for rows.Next() {
		var (
			rec                    models.GoldPrice
			selling, buyback, base sql.NullInt64
			date                   time.Time
		)
		if err := rows.Scan(&rec.Vendor, &rec.Weight, &selling, &buyback, &base, &date); err != nil {
			return nil, &models.PersistenceError{Op: "load history", Err: err}
		}
		rec.Unit = "gram"
		rec.SellingPrice = fromNullInt(selling)
		rec.BuybackPrice = fromNullInt(buyback)
		rec.Price = fromNullInt(base)
		rec.Date = date.Format("2006-01-02")
		records = append(records, rec)
	}

	return records, rows.Err()
}

// TrendCounts counts changes per direction since the given date
func (a *Adapter) TrendCounts(ctx context.Context, since time.Time) (models.TrendSummary, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT trend, COUNT(*) FROM price_changes WHERE price_date >= $1 GROUP BY trend`,
		since.Format("2006-01-02"))
	if err != nil {
		return models.TrendSummary{}, &models.PersistenceError{Op: "count trends", Err: err}
	}
	defer rows.Close()

	var summary models.TrendSummary
	for rows.Next() {
		var (
			trend string
			count int
		)
		if err := rows.Scan(&trend, &count); err != nil {
			return models.TrendSummary{}, &models.PersistenceError{Op: "count trends", Err: err}
		}
		switch models.Trend(trend) {
		case models.TrendUp:
			summary.Up = count
		case models.TrendDown:
			summary.Down = count
		case models.TrendStable:
			summary.Stable = count
		}
	}
	summary.Total = summary.Up + summary.Down + summary.Stable

	return summary, rows.Err()
}

// DeleteOlderThan removes snapshots and changes dated strictly before
// cutoff and returns the number of rows deleted
func (a *Adapter) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	day := cutoff.Format("2006-01-02")

	var total int64
	for _, table := range []string{"gold_prices", "price_changes"} {
		res, err := a.db.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE price_date < $1", table), day)
		if err != nil {
			return total, &models.PersistenceError{Op: "delete old rows", Err: err}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, &models.PersistenceError{Op: "delete old rows", Err: err}
		}
		total += n
	}

	return total, nil
}

// Close closes the storage connection
func (a *Adapter) Close() error {
	return a.db.Close()
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func fromNullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
