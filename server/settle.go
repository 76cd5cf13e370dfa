package server

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ashenafi-pixel/goal-ladder/games/ladder"
	"github.com/Ashenafi-pixel/goal-ladder/round"
)

const walletTimeout = 10 * time.Second

// wallet is the player's platform identity for one session. An empty token means
// the session is played without real-money debits and credits.
type wallet struct {
	token    string
	currency string
}

func newWallet(token, currency string) wallet {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = "USD"
	}
	return wallet{token: strings.TrimSpace(token), currency: currency}
}

func (s *Server) setWallet(sessionID string, wl wallet) {
	s.walletMu.Lock()
	defer s.walletMu.Unlock()
	s.wallets[sessionID] = wl
}

func (s *Server) walletFor(sessionID string) wallet {
	s.walletMu.Lock()
	defer s.walletMu.Unlock()
	if wl, ok := s.wallets[sessionID]; ok {
		return wl
	}
	return newWallet("", "")
}

func (s *Server) live(wl wallet) bool {
	return s.client != nil && wl.token != ""
}

// debit places a platform bet. It returns an empty bet ID when the wallet is not live.
func (s *Server) debit(ctx context.Context, wl wallet, amount decimal.Decimal) (string, error) {
	if !s.live(wl) {
		return "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, walletTimeout)
	defer cancel()
	betID, _, err := s.client.Bet(ctx, wl.token, wl.currency, amount)
	return betID, err
}

// refund rolls back a bet whose engine call was rejected after the debit.
func (s *Server) refund(wl wallet, betID string) {
	if betID == "" || !s.live(wl) {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), walletTimeout)
	defer cancel()
	if _, err := s.client.Rollback(ctx, wl.token, betID); err != nil {
		s.log.Error("rollback failed", zap.String("bet", betID), zap.Error(err))
	}
}

// RecordWin audits one ledger entry and credits it to the player's wallet.
// A line already in the audit file is not credited twice.
func (s *Server) RecordWin(sessionID string, w ladder.Win) {
	wl := s.walletFor(sessionID)
	ctx, cancel := context.WithTimeout(context.Background(), walletTimeout)
	defer cancel()

	appended, err := s.results.Append(ctx, &round.Result{
		SessionID: sessionID,
		LineID:    w.ID,
		Kind:      string(w.Kind),
		Amount:    w.Amount,
		Currency:  wl.currency,
	})
	if err != nil {
		s.log.Warn("audit append failed", zap.String("session", sessionID), zap.String("line", w.ID), zap.Error(err))
	} else if !appended {
		return
	}
	if !s.live(wl) {
		return
	}
	if _, err := s.client.Win(ctx, wl.token, wl.currency, w.Amount); err != nil {
		s.log.Error("win credit failed",
			zap.String("session", sessionID), zap.String("line", w.ID), zap.String("amount", w.Display), zap.Error(err))
	}
}
