package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// User ids come from the external identity provider and are opaque to us.
type User struct {
	ID    string
	Money int
}

type InventoryEntry struct {
	ID         string
	UserID     string
	StickerID  int
	AcquiredAt time.Time
}
