/*-------------------------------------------------------------------------
 *
 * handlers.go
 *    HTTP handlers for the support API
 *
 * The customer surface is a single /chat endpoint driven by the agent
 * runtime. The admin surface lists refund tickets and applies approve
 * or reject decisions.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/api/handlers.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vinovator/shopsmart-retail-agent/internal/agent"
	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/refund"
)

/* ChatRunner runs one agent chat turn */
type ChatRunner interface {
	Execute(ctx context.Context, customerID uuid.UUID, userMessage string) (*agent.ExecutionState, error)
}

/* TicketService is the slice of the ticket manager the handlers need */
type TicketService interface {
	GetTicket(ctx context.Context, id uuid.UUID) (*db.RefundTicket, error)
	ListPending(ctx context.Context, limit, offset int) ([]db.RefundTicket, error)
	ListAll(ctx context.Context, limit, offset int) ([]db.RefundTicket, error)
	Decide(ctx context.Context, id uuid.UUID, d refund.Decision, decidedBy string) (*db.RefundTicket, *db.Order, error)
}

/* Handlers holds the API handler dependencies */
type Handlers struct {
	runner  ChatRunner
	tickets TicketService
}

func NewHandlers(runner ChatRunner, tickets TicketService) *Handlers {
	return &Handlers{
		runner:  runner,
		tickets: tickets,
	}
}

/* Chat handles one customer chat turn */
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	customer, ok := GetCustomer(r.Context())
	if !ok {
		respondError(w, WrapError(ErrUnauthorized, requestID))
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid request body", err), requestID))
		return
	}
	if req.Message == "" {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "message is required", nil), requestID))
		return
	}

	state, err := h.runner.Execute(r.Context(), customer.ID, req.Message)
	if err != nil {
		respondError(w, ClassifyError(err, requestID))
		return
	}

	respondJSON(w, http.StatusOK, ChatResponse{
		Reply:      state.FinalAnswer,
		ToolRounds: state.ToolRounds,
		TokensUsed: state.TokensUsed,
	})
}

/* ListTickets lists refund tickets, pending ones by default */
func (h *Handlers) ListTickets(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	limit := 50
	offset := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	var (
		tickets []db.RefundTicket
		err     error
	)
	if r.URL.Query().Get("all") == "true" {
		tickets, err = h.tickets.ListAll(r.Context(), limit, offset)
	} else {
		tickets, err = h.tickets.ListPending(r.Context(), limit, offset)
	}
	if err != nil {
		respondError(w, ClassifyError(err, requestID))
		return
	}

	resp := TicketListResponse{
		Tickets: make([]TicketResponse, 0, len(tickets)),
		Count:   len(tickets),
	}
	for i := range tickets {
		resp.Tickets = append(resp.Tickets, ticketToResponse(&tickets[i]))
	}
	respondJSON(w, http.StatusOK, resp)
}

/* GetTicket returns one refund ticket */
func (h *Handlers) GetTicket(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid ticket id", err), requestID))
		return
	}

	ticket, err := h.tickets.GetTicket(r.Context(), id)
	if err != nil {
		respondError(w, ClassifyError(err, requestID))
		return
	}

	respondJSON(w, http.StatusOK, ticketToResponse(ticket))
}

/* DecideTicket applies an approve or reject decision to a pending
 * ticket. Approval refunds the linked order in the same transaction;
 * the response reflects both new states. */
func (h *Handlers) DecideTicket(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	vars := mux.Vars(r)
	id, err := uuid.Parse(vars["ticket_id"])
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid ticket id", err), requestID))
		return
	}

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "invalid request body", err), requestID))
		return
	}

	decision, err := refund.ParseDecision(req.Decision)
	if err != nil {
		respondError(w, WrapError(NewError(http.StatusBadRequest, "decision must be 'approve' or 'reject'", err), requestID))
		return
	}

	decidedBy := req.DecidedBy
	if decidedBy == "" {
		decidedBy = "admin"
	}

	ticket, order, err := h.tickets.Decide(r.Context(), id, decision, decidedBy)
	if err != nil {
		respondError(w, ClassifyError(err, requestID))
		return
	}

	respondJSON(w, http.StatusOK, DecisionResponse{
		Ticket: ticketToResponse(ticket),
		Order:  orderToResponse(order),
	})
}

/* NewRouter builds the HTTP router. The /chat endpoint requires a
 * resolvable User-ID header; the admin surface does not. */
func NewRouter(h *Handlers, resolver CustomerResolver) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(SecurityHeadersMiddleware)
	r.Use(CORSMiddleware)
	r.Use(LoggingMiddleware)

	chat := r.PathPrefix("/chat").Subrouter()
	chat.Use(CustomerAuthMiddleware(resolver))
	chat.HandleFunc("", h.Chat).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/tickets", h.ListTickets).Methods(http.MethodGet)
	admin.HandleFunc("/tickets/{id}", h.GetTicket).Methods(http.MethodGet)
	admin.HandleFunc("/refunds/{ticket_id}/decision", h.DecideTicket).Methods(http.MethodPost)

	return r
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, err *APIError) {
	response := ErrorResponse{
		Error: err.Message,
		Code:  err.Code,
	}
	if err.Err != nil {
		response.Message = err.Err.Error()
	}
	if err.RequestID != "" {
		w.Header().Set("X-Request-ID", err.RequestID)
	}
	respondJSON(w, err.Code, response)
}
