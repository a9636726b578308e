package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BeanieMen/Wikichu/internal/domain"
)

var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrInvalidRarity    = errors.New("rarity must be between 1 and 5")
	ErrDuplicateRequest = errors.New("duplicate purchase request")
)

type Repository interface {
	RegisterUser(ctx context.Context, userID string) error
	GetBalance(ctx context.Context, userID string) (int, error)
	Credit(ctx context.Context, userID string, amount int) error
	PurchaseSticker(ctx context.Context, entryID, userID string, price, stickerID int) error
	ListStickers(ctx context.Context, userID string) ([]domain.Sticker, error)

	RecordLogin(ctx context.Context, userID, day string) error
	LoginDays(ctx context.Context, userID string) ([]string, error)
}

// Drawer selects one sticker uniformly from a rarity tier.
type Drawer interface {
	DrawForRarity(rarity int) (domain.Sticker, error)
}

// IdempotencyCache claims purchase request ids; a claimed id means the
// request was already handled and must not debit again.
type IdempotencyCache interface {
	Reserve(ctx context.Context, requestID string) (bool, error)
}

type Service struct {
	repo  Repository
	pool  Drawer
	idem  IdempotencyCache
	now   func() time.Time
	newID func() string
}

// NewService wires the purchase orchestrator. idem may be nil, which disables
// the duplicate-request check.
func NewService(repo Repository, pool Drawer, idem IdempotencyCache) *Service {
	return &Service{
		repo:  repo,
		pool:  pool,
		idem:  idem,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// PurchaseChest debits the price and awards one sticker of the requested
// rarity, or makes no change at all. The draw happens before the debit so an
// empty pool can never strand a paid chest, and the debit itself is a single
// conditional update inside the repository transaction.
func (s *Service) PurchaseChest(ctx context.Context, userID, requestID string, price, rarity int) (domain.Sticker, error) {
	if price <= 0 {
		return domain.Sticker{}, ErrInvalidPrice
	}
	if !domain.IsValidRarity(rarity) {
		return domain.Sticker{}, ErrInvalidRarity
	}

	if s.idem != nil && requestID != "" {
		ok, err := s.idem.Reserve(ctx, requestID)
		if err != nil {
			return domain.Sticker{}, fmt.Errorf("idempotency check failed: %w", err)
		}
		if !ok {
			return domain.Sticker{}, ErrDuplicateRequest
		}
	}

	if err := s.repo.RegisterUser(ctx, userID); err != nil {
		return domain.Sticker{}, err
	}

	sticker, err := s.pool.DrawForRarity(rarity)
	if err != nil {
		return domain.Sticker{}, err
	}

	if err := s.repo.PurchaseSticker(ctx, s.newID(), userID, price, sticker.ID); err != nil {
		return domain.Sticker{}, err
	}
	return sticker, nil
}

func (s *Service) AddMoney(ctx context.Context, userID string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := s.repo.RegisterUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.Credit(ctx, userID, amount)
}

// Stats returns the user's balance, or 0 for a user we have never seen.
func (s *Service) Stats(ctx context.Context, userID string) (int, error) {
	money, err := s.repo.GetBalance(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return money, nil
}

func (s *Service) Stickers(ctx context.Context, userID string) ([]domain.Sticker, error) {
	return s.repo.ListStickers(ctx, userID)
}

const dayLayout = "2006-01-02"

// TrackLogin records at most one login per user per UTC day.
func (s *Service) TrackLogin(ctx context.Context, userID string) error {
	if err := s.repo.RegisterUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.RecordLogin(ctx, userID, s.now().UTC().Format(dayLayout))
}

// LoginStreak counts consecutive login days ending today or yesterday. A last
// login before yesterday means the streak is broken.
func (s *Service) LoginStreak(ctx context.Context, userID string) (int, error) {
	days, err := s.repo.LoginDays(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(days) == 0 {
		return 0, nil
	}

	today := s.now().UTC()
	if days[0] != today.Format(dayLayout) && days[0] != today.AddDate(0, 0, -1).Format(dayLayout) {
		return 0, nil
	}

	expected, err := time.Parse(dayLayout, days[0])
	if err != nil {
		return 0, fmt.Errorf("malformed login day %q: %w", days[0], err)
	}
	streak := 1
	for _, d := range days[1:] {
		expected = expected.AddDate(0, 0, -1)
		if d != expected.Format(dayLayout) {
			break
		}
		streak++
	}
	return streak, nil
}
