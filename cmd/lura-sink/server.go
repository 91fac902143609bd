package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nathikazad/lura-bletest/internal/log"
	"github.com/nathikazad/lura-bletest/pkg/readings"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// numberRequest is the ingest body. Number is a pointer so that a missing or
// null field is rejected rather than read as zero.
type numberRequest struct {
	Number *int64 `json:"number"`
}

type numberResponse struct {
	Received int64 `json:"received"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Uptime   string `json:"uptime"`
	Readings int    `json:"readings"`
	Clients  int    `json:"clients"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server collects readings posted by the monitor and republishes them over
// HTTP and WebSocket.
type Server struct {
	mux     *http.ServeMux
	logbook *readings.Log
	hub     *hub
	started time.Time
}

func newServer(capacity int) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		logbook: readings.New(capacity),
		hub:     newHub(),
		started: time.Now(),
	}
	s.mux.HandleFunc("POST /number", s.handleNumber)
	s.mux.HandleFunc("GET /numbers", s.handleNumbers)
	s.mux.HandleFunc("GET /live", s.handleLive)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleNumber(w http.ResponseWriter, r *http.Request) {
	var request numberRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&request); err != nil || request.Number == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"number\": N}"})
		return
	}
	number := *request.Number
	log.Debug("Received %d from %s", number, r.RemoteAddr)
	s.logbook.Add(strconv.FormatInt(number, 10))
	s.hub.broadcast(event{Type: "number", Payload: number})
	writeJSON(w, http.StatusOK, numberResponse{Received: number})
}

func (s *Server) handleNumbers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := s.logbook.Export(w); err != nil {
		log.Error("Failed to export readings: %s", err)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warning("Failed to upgrade connection: %s", err)
		return
	}
	s.hub.add(conn)
	// Drain the client so closes are noticed promptly instead of on the next
	// failed broadcast.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.remove(conn)
				return
			}
		}
	}()
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Uptime:   time.Since(s.started).Round(time.Second).String(),
		Readings: s.logbook.Len(),
		Clients:  s.hub.count(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response: %s", err)
	}
}
