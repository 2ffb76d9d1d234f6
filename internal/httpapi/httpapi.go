// Package httpapi exposes the engine's command surface over HTTP: configure,
// register, and action, each resolved through the registry and answered with
// the JSON envelope the bots expect.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/lox/nlhe/internal/engine"
	"github.com/lox/nlhe/internal/registry"
	"github.com/rs/zerolog"
)

// Handler serves the configure/register/action routes for every game the
// registry knows about.
type Handler struct {
	log      zerolog.Logger
	registry *registry.Registry
	mux      *http.ServeMux
}

// NewHandler builds a Handler and registers its routes on a fresh
// http.ServeMux.
func NewHandler(log zerolog.Logger, reg *registry.Registry) *Handler {
	h := &Handler{
		log:      log.With().Str("component", "httpapi").Logger(),
		registry: reg,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /games/{game}/configure", h.handleConfigure)
	h.mux.HandleFunc("POST /games/{game}/register", h.handleRegister)
	h.mux.HandleFunc("POST /games/{game}/action", h.handleAction)
	return h
}

// ServeHTTP makes Handler an http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type okResponse struct {
	Status string `json:"status"`
}

type errResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(okResponse{Status: "ok"})
}

func writeErr(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errResponse{Status: "error", Reason: reason})
}

type configureRequest struct {
	Option string `json:"option"`
	Value  int    `json:"value"`
}

func (h *Handler) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var req configureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request")
		return
	}

	gameID := r.PathValue("game")
	err := h.registry.Dispatch(gameID, func(t *engine.Table) error {
		return t.Configure(req.Option, req.Value)
	})
	h.respond(w, gameID, err)
}

type registerRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type registerResponse struct {
	Status      string `json:"status"`
	SeatID      int    `json:"seat_id"`
	SecretToken string `json:"secret_id"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request")
		return
	}

	gameID := r.PathValue("game")
	var seatID int
	var secretToken string
	err := h.registry.Dispatch(gameID, func(t *engine.Table) error {
		var err error
		seatID, secretToken, err = t.AddPlayer(req.Name, req.Address)
		return err
	})
	if err != nil {
		h.respond(w, gameID, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(registerResponse{Status: "ok", SeatID: seatID, SecretToken: secretToken})
}

type actionRequest struct {
	SecretID string `json:"secret_id"`
	Command  string `json:"command"`
	Value    int    `json:"value"`
}

var commandKinds = map[string]engine.CommandKind{
	"check": engine.CmdCheck,
	"call":  engine.CmdCall,
	"fold":  engine.CmdFold,
	"allin": engine.CmdAllIn,
	"bet":   engine.CmdBet,
}

func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "malformed request")
		return
	}

	kind, ok := commandKinds[req.Command]
	if !ok {
		// Unrecognized commands are no-ops, logged, and answered as ok.
		h.log.Warn().Str("command", req.Command).Msg("ignoring unrecognized command")
		writeOK(w)
		return
	}

	gameID := r.PathValue("game")
	err := h.registry.Dispatch(gameID, func(t *engine.Table) error {
		return t.PlayerAction(req.SecretID, engine.Command{Kind: kind, Amount: req.Value})
	})
	h.respond(w, gameID, err)
}

// respond maps a dispatch/engine error to the wire envelope, logging unknown
// game ids at warn level since they usually indicate a client bug.
func (h *Handler) respond(w http.ResponseWriter, gameID string, err error) {
	if err == nil {
		writeOK(w)
		return
	}
	if err == registry.ErrUnknownGame {
		h.log.Warn().Str("game_id", gameID).Msg("request for unknown game")
		writeErr(w, http.StatusNotFound, "unknown game")
		return
	}
	writeErr(w, http.StatusOK, err.Error())
}
