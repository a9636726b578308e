package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

// SQLiteRepo is the single-file store used for local development. It mirrors
// the Postgres schema and transaction behavior on modernc.org/sqlite.
const sqliteSchema = `
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
    acquired_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS user_logins (
    user_id   TEXT NOT NULL,
    login_day TEXT NOT NULL,
    PRIMARY KEY (user_id, login_day)
);`

type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(path string) (*SQLiteRepo, error) {
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("cannot ping db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("cannot apply schema: %w", err)
	}
	return &SQLiteRepo{db: db}, nil
}

func (r *SQLiteRepo) SeedCatalog(ctx context.Context, stickers []domain.Sticker) error {
	query := `INSERT OR IGNORE INTO stickers (id, name, source_url, rarity, sticker_desc)
	          VALUES (?, ?, ?, ?, ?);`
	for _, s := range stickers {
		if _, err := r.db.ExecContext(ctx, query, s.ID, s.Name, s.SourceURL, s.Rarity, s.Description); err != nil {
			return errors.Wrap(err, "repo: SeedCatalog")
		}
	}
	return nil
}

func (r *SQLiteRepo) RegisterUser(ctx context.Context, userID string) error {
	query := `INSERT OR IGNORE INTO users (id, money) VALUES (?, 0);`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return errors.Wrap(err, "repo: RegisterUser")
	}
	return nil
}

func (r *SQLiteRepo) GetBalance(ctx context.Context, userID string) (int, error) {
	query := `SELECT money FROM users WHERE id = ?;`
	var money int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&money); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrUserNotFound
		}
		return 0, errors.Wrap(err, "repo: GetBalance")
	}
	return money, nil
}

func (r *SQLiteRepo) Credit(ctx context.Context, userID string, amount int) error {
	query := `UPDATE users SET money = money + ? WHERE id = ?;`
	res, err := r.db.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return errors.Wrap(err, "repo: Credit")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *SQLiteRepo) PurchaseSticker(ctx context.Context, entryID, userID string, price, stickerID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "repo: PurchaseSticker begin")
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET money = money - ? WHERE id = ? AND money >= ?", price, userID, price)
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
		"INSERT INTO inventory (id, user_id, sticker_id) VALUES (?, ?, ?)",
		entryID, userID, stickerID)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "repo: PurchaseSticker insert")
	}
	return tx.Commit()
}

func (r *SQLiteRepo) ListStickers(ctx context.Context, userID string) ([]domain.Sticker, error) {
	query := `SELECT s.id, s.name, s.source_url, s.rarity, s.sticker_desc
	          FROM stickers s
	          JOIN inventory i ON s.id = i.sticker_id
	          WHERE i.user_id = ?
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

func (r *SQLiteRepo) RecordLogin(ctx context.Context, userID, day string) error {
	query := `INSERT OR IGNORE INTO user_logins (user_id, login_day) VALUES (?, ?);`
	if _, err := r.db.ExecContext(ctx, query, userID, day); err != nil {
		return errors.Wrap(err, "repo: RecordLogin")
	}
	return nil
}

func (r *SQLiteRepo) LoginDays(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT login_day FROM user_logins WHERE user_id = ? ORDER BY login_day DESC;`
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
