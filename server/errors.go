package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
	"github.com/Ashenafi-pixel/goal-ladder/games"
	"github.com/Ashenafi-pixel/goal-ladder/games/ladder"
)

// APIError is the standard error response for the ladder API.
type APIError struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, code int, errMsg, codeStr string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(APIError{
		Error:   errMsg,
		Code:    codeStr,
		Message: errMsg,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// engineErrors maps engine sentinels to status and error code. The first match wins.
var engineErrors = []struct {
	err    error
	status int
	code   string
}{
	{ladder.ErrNoSession, http.StatusNotFound, "no_session"},
	{ladder.ErrHalted, http.StatusConflict, "session_halted"},
	{ladder.ErrBoostUnavailable, http.StatusConflict, "boost_unavailable"},
	{ladder.ErrNoBoostSelection, http.StatusConflict, "no_boost_selection"},
	{ladder.ErrBoostAmount, http.StatusBadRequest, "invalid_boost_amount"},
	{ladder.ErrMatchCount, http.StatusBadRequest, "invalid_matches"},
	{games.ErrSelection, http.StatusBadRequest, "invalid_matches"},
	{ladder.ErrStake, http.StatusBadRequest, "invalid_stake"},
	{ladder.ErrUnknownMatch, http.StatusBadRequest, "unknown_match"},
	{ladder.ErrUnknownTeam, http.StatusBadRequest, "unknown_team"},
	{ladder.ErrSpeed, http.StatusBadRequest, "invalid_speed"},
	{gamemath.ErrNoThresholds, http.StatusBadRequest, "invalid_ladder"},
	{gamemath.ErrRowMultiplier, http.StatusBadRequest, "invalid_ladder"},
}

func writeEngineError(w http.ResponseWriter, err error) {
	for _, e := range engineErrors {
		if errors.Is(err, e.err) {
			writeError(w, e.status, err.Error(), e.code)
			return
		}
	}
	writeError(w, http.StatusInternalServerError, err.Error(), "internal")
}
