package api

import (
	"encoding/json"
	"net/http"

	"github.com/founderlink/founderlink/internal/core"
)

type suggestRequest struct {
	UserID    string  `json:"user_id"`
	MatchType string  `json:"match_type"`
	Limit     int     `json:"limit"`
	MinScore  float64 `json:"min_score"`
}

func (s *Server) handleSuggestIntroductions(w http.ResponseWriter, r *http.Request) {
	var input suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.UserID == "" {
		s.respondError(w, http.StatusBadRequest, "user_id required")
		return
	}

	matchType := core.MatchType(input.MatchType)
	switch matchType {
	case "", core.MatchAll, core.MatchGoalBased, core.MatchAskBased:
	default:
		s.respondError(w, http.StatusBadRequest, "unknown match_type")
		return
	}

	suggestions, err := s.matcher.SuggestIntroductions(
		r.Context(), core.UserID(input.UserID), input.Limit, input.MinScore, matchType)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":     input.UserID,
		"suggestions": suggestions,
	})
}

func (s *Server) handleCalculateScore(w http.ResponseWriter, r *http.Request) {
	requesterID := r.URL.Query().Get("requester")
	targetID := r.URL.Query().Get("target")
	if requesterID == "" || targetID == "" {
		s.respondError(w, http.StatusBadRequest, "requester and target required")
		return
	}

	score, err := s.matcher.CalculateMatchScore(
		r.Context(), core.UserID(requesterID), core.UserID(targetID), nil)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"requester_id": requesterID,
		"target_id":    targetID,
		"score":        score,
	})
}
