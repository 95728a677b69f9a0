package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/founderlink/founderlink/internal/core"
)

type upsertUserRequest struct {
	Name       string     `json:"name"`
	Headline   string     `json:"headline"`
	Location   string     `json:"location"`
	Bio        string     `json:"bio"`
	Industry   string     `json:"industry"`
	Verified   bool       `json:"verified"`
	LastPostAt *time.Time `json:"last_post_at"`
}

func (s *Server) handleUpsertUser(w http.ResponseWriter, r *http.Request) {
	userID := core.UserID(chi.URLParam(r, "userID"))

	var input upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name required")
		return
	}

	profile := &core.Profile{
		UserID:     userID,
		Name:       input.Name,
		Headline:   input.Headline,
		Location:   input.Location,
		Bio:        input.Bio,
		Industry:   input.Industry,
		Verified:   input.Verified,
		LastPostAt: input.LastPostAt,
	}

	if err := s.userStore.Upsert(profile); err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID := core.UserID(chi.URLParam(r, "userID"))

	profile, err := s.userStore.GetByID(userID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

type createSignalRequest struct {
	OwnerID  string `json:"owner_id"`
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Urgency  string `json:"urgency"`
}

// handleCreateSignal stores a goal or ask and indexes its embedding.
// Index failure rolls the row back so the store and the vector index
// cannot drift apart.
func (s *Server) handleCreateSignal(w http.ResponseWriter, r *http.Request) {
	var input createSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.OwnerID == "" || input.Text == "" {
		s.respondError(w, http.StatusBadRequest, "owner_id and text required")
		return
	}

	kind := core.SignalKind(input.Kind)
	if kind != core.SignalGoal && kind != core.SignalAsk {
		s.respondError(w, http.StatusBadRequest, "kind must be goal or ask")
		return
	}

	if _, err := s.userStore.GetByID(core.UserID(input.OwnerID)); err != nil {
		s.respondStoreError(w, err)
		return
	}

	sig := &core.Signal{
		ID:       core.SignalID(uuid.New().String()),
		OwnerID:  core.UserID(input.OwnerID),
		Kind:     kind,
		Text:     input.Text,
		Active:   true,
		Category: input.Category,
		Urgency:  input.Urgency,
	}

	if err := s.signalStore.Create(sig); err != nil {
		s.respondStoreError(w, err)
		return
	}

	if s.indexer != nil {
		if err := s.indexer.IndexSignal(r.Context(), *sig); err != nil {
			s.log.Error("signal indexing failed, rolling back",
				zap.String("signal_id", string(sig.ID)),
				zap.Error(err))
			if derr := s.signalStore.Deactivate(sig.ID); derr != nil {
				s.log.Error("signal rollback failed",
					zap.String("signal_id", string(sig.ID)),
					zap.Error(derr))
			}
			s.respondError(w, http.StatusServiceUnavailable, "signal indexing unavailable")
			return
		}
	}

	s.respondJSON(w, http.StatusCreated, sig)
}

func (s *Server) handleListSignals(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner")
	if ownerID == "" {
		s.respondError(w, http.StatusBadRequest, "owner required")
		return
	}

	signals, err := s.signalStore.ActiveByOwner(core.UserID(ownerID))
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"owner_id": ownerID,
		"signals":  signals,
	})
}

// handleDeactivateSignal retires a signal from matching and removes its
// vector. A failed vector removal is logged but not surfaced; the store
// row is already inactive so the signal no longer matches.
func (s *Server) handleDeactivateSignal(w http.ResponseWriter, r *http.Request) {
	signalID := core.SignalID(chi.URLParam(r, "signalID"))

	sig, err := s.signalStore.GetByID(signalID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	if err := s.signalStore.Deactivate(signalID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	if s.indexer != nil {
		if err := s.indexer.RemoveSignal(r.Context(), sig.Kind, signalID); err != nil {
			s.log.Warn("failed to remove signal vector",
				zap.String("signal_id", string(signalID)),
				zap.Error(err))
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
