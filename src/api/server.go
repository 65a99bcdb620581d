// Package api exposes the chatbot and inventory over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"truckfinder-agent/src/contracts"
	"truckfinder-agent/src/inventory"
	"truckfinder-agent/src/logger"
)

// ChatHandler runs one chat turn. Satisfied by agent.Agent; tests use
// a scripted implementation.
type ChatHandler interface {
	HandleMessage(ctx context.Context, sessionID, text string) (*contracts.ChatResponse, error)
}

// UsageReporter supplies tool-usage counts for /meta.json. Satisfied
// by analytics.Agent. Nil means usage figures are omitted.
type UsageReporter interface {
	Snapshot(ctx context.Context) (contracts.UsageSnapshot, error)
}

// Server holds the HTTP handler state.
type Server struct {
	engine *inventory.Engine
	chat   ChatHandler
	usage  UsageReporter
	logger logger.Logger

	// meta is computed once at construction; the inventory is
	// immutable for the process lifetime so the facets never change.
	meta contracts.Meta
}

// NewServer builds the router and wraps it in an http.Server ready to
// listen on addr.
func NewServer(addr string, engine *inventory.Engine, chat ChatHandler, usage UsageReporter, log logger.Logger) *http.Server {
	s := &Server{
		engine: engine,
		chat:   chat,
		usage:  usage,
		logger: log,
		meta:   contracts.MetaFromFacets(inventory.ComputeFacets(engine.Store().All())),
	}

	return &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // chat turns wait on the model
	}
}

// Router builds the route table. Exposed separately for handler tests.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/inventory", s.handleListInventory).Methods(http.MethodGet)
	r.HandleFunc("/inventory/{id:[0-9]+}", s.handleGetVehicle).Methods(http.MethodGet)
	r.HandleFunc("/meta.json", s.handleMeta).Methods(http.MethodGet)
	r.Use(s.loggingMiddleware)

	// CORS wraps the router itself so preflight requests get answered
	// even when no route matches the OPTIONS method.
	return s.corsMiddleware(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"vehicles": s.engine.Store().Len(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req contracts.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	resp, err := s.chat.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.logger.Error("[API] Chat turn failed: %v", err)
		writeError(w, http.StatusInternalServerError, "agent error: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	spec, err := specFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.engine.Search(spec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, contracts.InventoryPage{
		Count:    len(records),
		Vehicles: contracts.VehiclesFromRecords(records),
	})
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := vehicleID(mux.Vars(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := s.engine.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, contracts.VehicleFromRecord(record))
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	meta := s.meta
	if s.usage != nil {
		if snapshot, err := s.usage.Snapshot(r.Context()); err == nil {
			meta.Usage = &snapshot
		} else {
			s.logger.Debug("[API] Usage snapshot unavailable: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, meta)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, contracts.ErrorResponse{Error: msg})
}
