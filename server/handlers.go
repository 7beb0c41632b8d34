package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rustyeddy/papertrade/sim"
	"github.com/rustyeddy/papertrade/snapshot"
)

type buyRequest struct {
	Code   string `json:"code"`
	Shares int    `json:"shares"`
}

type sellRequest struct {
	Code string `json:"code"`
}

type ventureRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Sector string `json:"sector"`
}

type eventResponse struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
}

type resultResponse struct {
	OK      bool    `json:"ok"`
	Balance float64 `json:"balance"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := snapshot.FromPortfolio(s.portfolio)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleGetStocks(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := snapshot.FromPortfolio(s.portfolio)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, doc.Held)
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := snapshot.FromPortfolio(s.portfolio)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, doc.Pool)
}

func (s *Server) handleGetEvents(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	events := s.events.Events()
	s.mu.Unlock()

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, eventResponse{Time: e.Time, Description: e.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	ok := s.portfolio.Buy(req.Code, req.Shares)
	balance := s.portfolio.Balance()
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "buy rejected: unknown code, bad share count or insufficient funds",
		})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: true, Balance: balance})
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req sellRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	ok := s.portfolio.Sell(req.Code)
	balance := s.portfolio.Balance()
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "sell rejected: stock not currently held",
		})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: true, Balance: balance})
}

func (s *Server) handleSellAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ok := s.portfolio.SellAllHeld()
	balance := s.portfolio.Balance()
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "sell-all rejected: no stocks held",
		})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: true, Balance: balance})
}

func (s *Server) handleVenture(w http.ResponseWriter, r *http.Request) {
	var req ventureRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and code are required"})
		return
	}

	s.mu.Lock()
	ok := s.portfolio.CreateVenture(req.Name, req.Code, req.Sector)
	balance := s.portfolio.Balance()
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "venture rejected: insufficient funds",
		})
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{OK: true, Balance: balance})
}

func (s *Server) handleProgressDay(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.portfolio.ProgressDay()
	doc := snapshot.FromPortfolio(s.portfolio)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleLoan(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	granted := s.portfolio.RequestLoan()
	balance := s.portfolio.Balance()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resultResponse{OK: granted, Balance: balance})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := snapshot.Write(s.snapshotPath, s.portfolio)
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("path", s.snapshotPath).Msg("save failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "save failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"saved": s.snapshotPath})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, err := snapshot.Read(s.snapshotPath, s.rng, s.events, s.jnl)
	if err == nil {
		s.portfolio = p
	}
	var doc snapshot.Document
	if err == nil {
		doc = snapshot.FromPortfolio(s.portfolio)
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("path", s.snapshotPath).Msg("load failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "load failed"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	name := s.portfolio.Name()
	s.portfolio = sim.New(name, s.rng, s.events, s.jnl)
	doc := snapshot.FromPortfolio(s.portfolio)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, doc)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
