package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pkg/errors"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
    id    TEXT PRIMARY KEY,
    money INTEGER NOT NULL DEFAULT 0 CHECK (money >= 0)
);
CREATE TABLE IF NOT EXISTS stickers (
    id           INTEGER PRIMARY KEY,
    name         TEXT NOT NULL,
    source_url   TEXT NOT NULL,
    rarity       INTEGER NOT NULL CHECK (rarity >= 1 AND rarity <= 5),
    sticker_desc TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS inventory (
    id          TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    sticker_id  INTEGER NOT NULL REFERENCES stickers(id),
    acquired_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS user_logins (
    user_id   TEXT NOT NULL,
    login_day TEXT NOT NULL,
    PRIMARY KEY (user_id, login_day)
);`

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(dsn string) (*PostgresRepo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot ping db: %w", err)
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("cannot apply schema: %w", err)
	}
	return &PostgresRepo{db: db}, nil
}

// SeedCatalog inserts the sticker pool, skipping rows that already exist.
func (r *PostgresRepo) SeedCatalog(ctx context.Context, stickers []domain.Sticker) error {
	query := `INSERT INTO stickers (id, name, source_url, rarity, sticker_desc)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO NOTHING;`
	for _, s := range stickers {
		if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.SourceURL, s.Rarity, s.Description); err != nil {
			return errors.Wrap(err, "repo: SeedCatalog")
		}
	}
	return nil
}

func (r *PostgresRepo) RegisterUser(ctx context.Context, userID string) error {
	query := `INSERT INTO users (id, money) VALUES ($1, 0) ON CONFLICT (id) DO NOTHING;`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return errors.Wrap(err, "repo: RegisterUser")
	}
	return nil
}

func (r *PostgresRepo) GetBalance(ctx context.Context, userID string) (int, error) {
	query := `SELECT money FROM users WHERE id = $1;`
	var money int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&money); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, errors.Wrap(err, "repo: GetBalance")
	}
	return money, nil
}

func (r *PostgresRepo) Credit(ctx context.Context, userID string, amount int) error {
	query := `UPDATE users SET money = money + $1 WHERE id = $2;`
	res, err := r.db.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return errors.Wrap(err, "repo: Credit")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// PurchaseSticker debits the price and appends the inventory row in one
// transaction. The debit is conditional on the current balance, so two
// concurrent purchases can never both pass a stale balance check.
func (r *PostgresRepo) PurchaseSticker(ctx context.Context, entryID, userID string, price, stickerID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "repo: PurchaseSticker begin")
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET money = money - $1 WHERE id = $2 AND money >= $1", price, userID)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "repo: PurchaseSticker debit")
	}
	rows, err := res.RowsAffected()
	if err != nil || rows == 0 {
		_ = tx.Rollback()
		return domain.ErrInsufficientFunds
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO inventory (id, user_id, sticker_id) VALUES ($1, $2, $3)",
		entryID, userID, stickerID)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "repo: PurchaseSticker insert")
	}
	return tx.Commit()
}

func (r *PostgresRepo) ListStickers(ctx context.Context, userID string) ([]domain.Sticker, error) {
	query := `SELECT s.id, s.name, s.source_url, s.rarity, s.sticker_desc
	          FROM stickers s
	          JOIN inventory i ON s.id = i.sticker_id
	          WHERE i.user_id = $1
	          ORDER BY i.acquired_at;`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "repo: ListStickers")
	}
	defer rows.Close()

	var res []domain.Sticker
	for rows.Next() {
		var s domain.Sticker
		if err := rows.Scan(&s.ID, &s.Name, &s.SourceURL, &s.Rarity, &s.Description); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

func (r *PostgresRepo) RecordLogin(ctx context.Context, userID, day string) error {
	query := `INSERT INTO user_logins (user_id, login_day) VALUES ($1, $2)
	          ON CONFLICT (user_id, login_day) DO NOTHING;`
	if _, err := r.db.ExecContext(ctx, query, userID, day); err != nil {
		return errors.Wrap(err, "repo: RecordLogin")
	}
	return nil
}

func (r *PostgresRepo) LoginDays(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT login_day FROM user_logins WHERE user_id = $1 ORDER BY login_day DESC;`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "repo: LoginDays")
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
