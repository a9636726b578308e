package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteRepo {
	t.Helper()
	repo, err := NewSQLiteRepo(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)

	err = repo.SeedCatalog(context.Background(), []domain.Sticker{
		{ID: 1, Name: "PEBBLIT", SourceURL: "/stickers/pebblit.png", Rarity: 1, Description: "a rock"},
		{ID: 10, Name: "GLYPTOBLOCK", SourceURL: "/stickers/glyptoblock.png", Rarity: 3, Description: "ancient"},
	})
	assert.NoError(t, err)
	return repo
}

func TestSQLiteRepo_RegisterUserIsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	assert.NoError(t, repo.Credit(ctx, "user-1", 300))

	// Re-registering must not reset the balance.
	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	money, err := repo.GetBalance(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 300, money)
}

func TestSQLiteRepo_GetBalanceUnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.GetBalance(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSQLiteRepo_PurchaseSticker(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	assert.NoError(t, repo.Credit(ctx, "user-1", 500))

	err := repo.PurchaseSticker(ctx, uuid.NewString(), "user-1", 500, 10)
	assert.NoError(t, err)

	money, err := repo.GetBalance(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, money)

	stickers, err := repo.ListStickers(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, stickers, 1)
	assert.Equal(t, "GLYPTOBLOCK", stickers[0].Name)
	assert.Equal(t, 3, stickers[0].Rarity)
}

func TestSQLiteRepo_PurchaseStickerInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	assert.NoError(t, repo.Credit(ctx, "user-1", 100))

	err := repo.PurchaseSticker(ctx, uuid.NewString(), "user-1", 150, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Neither the debit nor the inventory insert may have happened.
	money, err := repo.GetBalance(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, 100, money)

	stickers, err := repo.ListStickers(ctx, "user-1")
	assert.NoError(t, err)
	assert.Empty(t, stickers)
}

func TestSQLiteRepo_PurchaseStickerAllowsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	assert.NoError(t, repo.Credit(ctx, "user-1", 100))

	assert.NoError(t, repo.PurchaseSticker(ctx, uuid.NewString(), "user-1", 50, 1))
	assert.NoError(t, repo.PurchaseSticker(ctx, uuid.NewString(), "user-1", 50, 1))

	// The collection is a multiset: owning two copies is fine.
	stickers, err := repo.ListStickers(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, stickers, 2)
}

func TestSQLiteRepo_SeedCatalogIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	// Re-seeding with a changed name must not clobber the stored row.
	err := repo.SeedCatalog(ctx, []domain.Sticker{
		{ID: 1, Name: "RENAMED", SourceURL: "/x.png", Rarity: 1, Description: "x"},
	})
	assert.NoError(t, err)

	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	assert.NoError(t, repo.Credit(ctx, "user-1", 50))
	assert.NoError(t, repo.PurchaseSticker(ctx, uuid.NewString(), "user-1", 50, 1))

	stickers, err := repo.ListStickers(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "PEBBLIT", stickers[0].Name)
}

func TestSQLiteRepo_RecordLoginOncePerDay(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assert.NoError(t, repo.RegisterUser(ctx, "user-1"))
	assert.NoError(t, repo.RecordLogin(ctx, "user-1", "2024-03-10"))
	assert.NoError(t, repo.RecordLogin(ctx, "user-1", "2024-03-10"))
	assert.NoError(t, repo.RecordLogin(ctx, "user-1", "2024-03-09"))

	days, err := repo.LoginDays(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10", "2024-03-09"}, days)
}
