package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/founderlink/founderlink/internal/core"
	"github.com/founderlink/founderlink/internal/feedback"
)

type createIntroRequest struct {
	RequesterID string `json:"requester_id"`
	TargetID    string `json:"target_id"`
	MatchType   string `json:"match_type"`
	GoalType    string `json:"goal_type"`
}

// handleCreateIntroduction opens an introduction request. The match
// score is snapshotted at request time so later analytics see the score
// the requester acted on, not a recomputed one.
func (s *Server) handleCreateIntroduction(w http.ResponseWriter, r *http.Request) {
	var input createIntroRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if input.RequesterID == "" || input.TargetID == "" {
		s.respondError(w, http.StatusBadRequest, "requester_id and target_id required")
		return
	}

	requesterID := core.UserID(input.RequesterID)
	targetID := core.UserID(input.TargetID)

	score, err := s.matcher.CalculateMatchScore(r.Context(), requesterID, targetID, nil)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	matchType := core.MatchType(input.MatchType)
	if matchType == "" {
		matchType = core.MatchAll
	}

	intro := &core.Introduction{
		RequesterID:   requesterID,
		TargetID:      targetID,
		Status:        core.IntroRequested,
		MatchType:     matchType,
		Score:         score,
		GoalType:      input.GoalType,
		IndustryMatch: s.sameIndustry(requesterID, targetID),
	}

	if err := s.introStore.Create(intro); err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.recorder.Record(intro, core.IntroRequested, nil)

	s.respondJSON(w, http.StatusCreated, intro)
}

func (s *Server) sameIndustry(a, b core.UserID) bool {
	pa, err := s.userStore.GetByID(a)
	if err != nil {
		return false
	}
	pb, err := s.userStore.GetByID(b)
	if err != nil {
		return false
	}
	return pa.Industry != "" && pa.Industry == pb.Industry
}

func (s *Server) handleGetIntroduction(w http.ResponseWriter, r *http.Request) {
	introID := core.IntroID(chi.URLParam(r, "introID"))

	intro, err := s.introStore.GetByID(introID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, intro)
}

type respondIntroRequest struct {
	Action string `json:"action"` // accept, decline, expire
}

// handleRespondIntroduction moves a requested introduction to its
// terminal or accepted state and emits the matching feedback score.
func (s *Server) handleRespondIntroduction(w http.ResponseWriter, r *http.Request) {
	introID := core.IntroID(chi.URLParam(r, "introID"))

	var input respondIntroRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var status core.IntroStatus
	switch input.Action {
	case "accept":
		status = core.IntroAccepted
	case "decline":
		status = core.IntroDeclined
	case "expire":
		status = core.IntroExpired
	default:
		s.respondError(w, http.StatusBadRequest, "action must be accept, decline or expire")
		return
	}

	intro, err := s.introStore.Transition(introID, status, nil)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	score := s.recorder.Record(intro, status, nil)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"introduction":   intro,
		"feedback_score": score,
	})
}

// handleCompleteIntroduction closes an accepted introduction with
// outcome data. The outcome is validated at this boundary so the
// feedback scorer can assume well-formed input.
func (s *Server) handleCompleteIntroduction(w http.ResponseWriter, r *http.Request) {
	introID := core.IntroID(chi.URLParam(r, "introID"))

	var outcome core.OutcomeData
	if err := json.NewDecoder(r.Body).Decode(&outcome); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := feedback.ValidateOutcome(&outcome); err != nil {
		s.respondStoreError(w, err)
		return
	}

	intro, err := s.introStore.Transition(introID, core.IntroCompleted, &outcome)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	score := s.recorder.Record(intro, core.IntroCompleted, &outcome)

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"introduction":   intro,
		"feedback_score": score,
	})
}

func (s *Server) handleFeedbackHistory(w http.ResponseWriter, r *http.Request) {
	introID := core.IntroID(chi.URLParam(r, "introID"))

	if _, err := s.introStore.GetByID(introID); err != nil {
		s.respondStoreError(w, err)
		return
	}

	history, err := s.introStore.FeedbackHistory(introID)
	if err != nil {
		s.respondStoreError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"intro_id": introID,
		"history":  history,
	})
}
