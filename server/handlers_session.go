package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ashenafi-pixel/goal-ladder/games/ladder"
)

type startRequest struct {
	MatchIDs []string        `json:"matchIds"`
	Stake    decimal.Decimal `json:"stake"`
	LadderID string          `json:"ladderId"`
	Token    string          `json:"token"`
	Currency string          `json:"currency"`
}

// startSession debits the stake (when a token is given), starts a fresh session and
// begins simulating it.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "bad_request")
		return
	}
	matches, err := s.catalog.Lookup(req.MatchIDs)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if len(matches) != ladder.MatchCount {
		writeEngineError(w, ladder.ErrMatchCount)
		return
	}
	if !req.Stake.IsPositive() {
		writeEngineError(w, ladder.ErrStake)
		return
	}
	l := s.ladders.Resolve(req.LadderID)

	wl := newWallet(req.Token, req.Currency)
	betID, err := s.debit(r.Context(), wl, req.Stake)
	if err != nil {
		writeError(w, http.StatusPaymentRequired, err.Error(), "bet_failed")
		return
	}
	s.runner.Stop()
	id, err := s.game.Start(matches, req.Stake, l)
	if err != nil {
		s.refund(wl, betID)
		writeEngineError(w, err)
		return
	}
	s.setWallet(id, wl)
	if err := s.runner.SetSimulating(true); err != nil {
		s.log.Warn("simulation did not start", zap.String("session", id), zap.Error(err))
	}
	writeJSON(w, http.StatusCreated, s.game.Snapshot())
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	s.runner.Stop()
	s.game.Reset()
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

type boostSelectRequest struct {
	TeamID  string `json:"teamId"`
	MatchID string `json:"matchId"`
}

func (s *Server) boostSelect(w http.ResponseWriter, r *http.Request) {
	var req boostSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "bad_request")
		return
	}
	if err := s.game.SelectBoostTeam(req.TeamID, req.MatchID); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

type boostConfirmRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// boostConfirm debits the boost amount and activates the selection.
func (s *Server) boostConfirm(w http.ResponseWriter, r *http.Request) {
	var req boostConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "bad_request")
		return
	}
	if !s.game.BoostSelecting() {
		snap := s.game.Snapshot()
		switch {
		case !snap.Started:
			writeEngineError(w, ladder.ErrNoSession)
		case snap.Halted:
			writeEngineError(w, ladder.ErrHalted)
		default:
			writeEngineError(w, ladder.ErrNoBoostSelection)
		}
		return
	}
	if !req.Amount.IsPositive() {
		writeEngineError(w, ladder.ErrBoostAmount)
		return
	}
	wl := s.walletFor(s.game.Snapshot().SessionID)
	betID, err := s.debit(r.Context(), wl, req.Amount)
	if err != nil {
		writeError(w, http.StatusPaymentRequired, err.Error(), "bet_failed")
		return
	}
	if err := s.game.ConfirmBoost(req.Amount); err != nil {
		s.refund(wl, betID)
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) boostCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.game.CancelBoost(); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

type simulateRequest struct {
	Simulating bool `json:"simulating"`
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "bad_request")
		return
	}
	if err := s.runner.SetSimulating(req.Simulating); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

type speedRequest struct {
	Speed int `json:"speed"`
}

func (s *Server) speed(w http.ResponseWriter, r *http.Request) {
	var req speedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "bad_request")
		return
	}
	if err := s.runner.SetSpeed(req.Speed); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

// balance proxies the platform balance for the bearer token.
func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	if s.client == nil {
		writeError(w, http.StatusServiceUnavailable, "wallet not configured", "no_wallet")
		return
	}
	token := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	if token == "" {
		writeError(w, http.StatusUnauthorized, "token required", "unauthorized")
		return
	}
	balances, status, err := s.client.GetBalance(r.Context(), token)
	if err != nil {
		if status == 0 {
			status = http.StatusBadGateway
		}
		writeError(w, status, err.Error(), "platform_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"balances": balances})
}
