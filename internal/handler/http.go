package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BeanieMen/Wikichu/internal/domain"
	"github.com/BeanieMen/Wikichu/internal/handler/mw"
	"github.com/BeanieMen/Wikichu/internal/usecase"
)

type Handler struct {
	service *usecase.Service
}

func NewHandler(service *usecase.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Use(middleware.Logger)

	r.Get("/", h.rootHandler)
	r.Get("/api/chests", h.listChests)

	// These two take the user id in the body; the original dashboard calls
	// them server-side on behalf of a user.
	r.Post("/api/getStickersForUser", h.getStickersForUser)
	r.Post("/api/add-money", h.addMoney)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware)
		r.Post("/api/purchase-chest", h.purchaseChest)
		r.Get("/api/stats", h.stats)
		r.Post("/api/login", h.login)
		r.Get("/api/streak", h.streak)
	})
}

func (h *Handler) rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`
<html>
<head>
  <title>Wikichu Sticker Service</title>
</head>
<body style="font-family: sans-serif;">
  <h1>Wikichu Sticker Service</h1>
  <ul>
    <li><strong>GET /api/chests</strong> &mdash; chest tiers and prices</li>
    <li><strong>POST /api/purchase-chest</strong> &mdash; buy a chest, receive a sticker (Bearer token)</li>
    <li><strong>GET /api/stats</strong> &mdash; current coin balance (Bearer token)</li>
    <li><strong>GET /api/streak</strong> &mdash; login streak (Bearer token)</li>
    <li><strong>POST /api/getStickersForUser</strong> &mdash; a user's sticker collection</li>
    <li><strong>POST /api/add-money</strong> &mdash; credit coins for a completed lesson</li>
  </ul>
</body>
</html>
`))
}

// stickerPayload is the wire shape the frontend components expect.
type stickerPayload struct {
	StickerName string `json:"stickerName"`
	StickerURL  string `json:"stickerUrl"`
	Rarity      int    `json:"rarity"`
	StickerDesc string `json:"stickerDesc"`
}

func toStickerPayload(s domain.Sticker) stickerPayload {
	return stickerPayload{
		StickerName: s.Name,
		StickerURL:  s.SourceURL,
		Rarity:      s.Rarity,
		StickerDesc: s.Description,
	}
}

type chestPayload struct {
	Name   string `json:"name"`
	Price  int    `json:"price"`
	Rarity int    `json:"rarity"`
}

func (h *Handler) listChests(w http.ResponseWriter, r *http.Request) {
	payload := make([]chestPayload, 0, len(domain.Chests))
	for _, c := range domain.Chests {
		payload = append(payload, chestPayload{Name: c.Name, Price: c.Price, Rarity: c.Rarity})
	}
	writeJSON(w, payload)
}

type purchaseChestRequest struct {
	ChestPrice  int `json:"chestPrice"`
	ChestRarity int `json:"chestRarity"`
}

type purchaseChestResponse struct {
	Sticker stickerPayload `json:"sticker"`
}

func (h *Handler) purchaseChest(w http.ResponseWriter, r *http.Request) {
	userID := mw.MustGetUserID(r.Context())

	var req purchaseChestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "bad request")
		return
	}

	requestID := r.Header.Get("X-Request-Id")
	sticker, err := h.service.PurchaseChest(r.Context(), userID, requestID, req.ChestPrice, req.ChestRarity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientFunds):
			writeMessage(w, http.StatusBadRequest, "Insufficient funds")
		case errors.Is(err, usecase.ErrInvalidPrice),
			errors.Is(err, usecase.ErrInvalidRarity):
			writeMessage(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, usecase.ErrDuplicateRequest):
			writeMessage(w, http.StatusConflict, err.Error())
		default:
			writeMessage(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, purchaseChestResponse{Sticker: toStickerPayload(sticker)})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	userID := mw.MustGetUserID(r.Context())
	money, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	// The dashboard expects a bare integer body.
	writeJSON(w, money)
}

type getStickersRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) getStickersForUser(w http.ResponseWriter, r *http.Request) {
	var req getStickersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	stickers, err := h.service.Stickers(r.Context(), req.UserID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	payload := make([]stickerPayload, 0, len(stickers))
	for _, s := range stickers {
		payload = append(payload, toStickerPayload(s))
	}
	writeJSON(w, payload)
}

type addMoneyRequest struct {
	UserID string `json:"userId"`
	Amount int    `json:"amount"`
}

type addMoneyResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) addMoney(w http.ResponseWriter, r *http.Request) {
	var req addMoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeMessage(w, http.StatusBadRequest, "userId is required")
		return
	}

	if err := h.service.AddMoney(r.Context(), req.UserID, req.Amount); err != nil {
		if errors.Is(err, usecase.ErrInvalidAmount) {
			writeMessage(w, http.StatusBadRequest, err.Error())
			return
		}
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, addMoneyResponse{Success: true})
}

type streakResponse struct {
	Streak int `json:"streak"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	userID := mw.MustGetUserID(r.Context())
	if err := h.service.TrackLogin(r.Context(), userID); err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	streak, err := h.service.LoginStreak(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, streakResponse{Streak: streak})
}

func (h *Handler) streak(w http.ResponseWriter, r *http.Request) {
	userID := mw.MustGetUserID(r.Context())
	streak, err := h.service.LoginStreak(r.Context(), userID)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, streakResponse{Streak: streak})
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(messageResponse{Message: msg})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
