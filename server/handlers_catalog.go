package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Ashenafi-pixel/goal-ladder/gamemath"
)

func (s *Server) competitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"competitions": s.catalog.Competitions()})
}

// matches serves the bet slip list: ?competition=<key>&q=<team search>.
func (s *Server) matches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matches": s.catalog.Matches(q.Get("competition"), q.Get("q")),
	})
}

func (s *Server) registerLadder(w http.ResponseWriter, r *http.Request) {
	var l gamemath.Ladder
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body", "bad_request")
		return
	}
	if l.ModelID == "" {
		writeError(w, http.StatusBadRequest, "model_id is required", "invalid_ladder")
		return
	}
	if err := l.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_ladder")
		return
	}
	if err := s.ladders.Register(&l); err != nil {
		s.log.Error("register ladder", zap.String("model_id", l.ModelID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to store ladder", "internal")
		return
	}
	s.log.Info("ladder registered", zap.String("model_id", l.ModelID), zap.Int("columns", len(l.Thresholds)))
	writeJSON(w, http.StatusCreated, &l)
}

func (s *Server) getLadder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "modelID")
	l := s.ladders.Get(id)
	if l == nil && id == gamemath.DefaultModelID {
		l = gamemath.Default()
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "ladder not found", "not_found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}
