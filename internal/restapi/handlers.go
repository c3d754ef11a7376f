package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/uh-joan/cortellis-mcp-server/internal/metrics"
	"github.com/uh-joan/cortellis-mcp-server/internal/types"
)

func (s *Server) handleSearchDrugs(w http.ResponseWriter, r *http.Request) {
	var p types.SearchDrugsParams
	if !s.decodeBody(w, r, &p) {
		return
	}
	metrics.RecordInvocation(metrics.ModeREST)

	raw, err := s.client.SearchDrugs(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

func (s *Server) handleSearchCompanies(w http.ResponseWriter, r *http.Request) {
	var p types.SearchCompaniesParams
	if !s.decodeBody(w, r, &p) {
		return
	}
	metrics.RecordInvocation(metrics.ModeREST)

	raw, err := s.client.SearchCompanies(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

func (s *Server) handleSearchDeals(w http.ResponseWriter, r *http.Request) {
	var p types.SearchDealsParams
	if !s.decodeBody(w, r, &p) {
		return
	}
	metrics.RecordInvocation(metrics.ModeREST)

	raw, err := s.client.SearchDeals(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

func (s *Server) handleExploreOntology(w http.ResponseWriter, r *http.Request) {
	var p types.OntologyParams
	if !s.decodeBody(w, r, &p) {
		return
	}
	metrics.RecordInvocation(metrics.ModeREST)

	raw, err := s.client.ExploreOntology(r.Context(), p)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeRaw(w, raw)
}

// recordHandler builds the GET handler for one record kind. The record id
// comes from the path, not the body.
func (s *Server) recordHandler(kind types.RecordKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordInvocation(metrics.ModeREST)

		raw, err := s.client.GetRecord(r.Context(), kind, r.PathValue("id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeRaw(w, raw)
	}
}

// decodeBody decodes a JSON request body into a parameter bag. An empty
// body is accepted and leaves the bag zeroed; unknown fields are rejected
// so a misspelled filter fails loudly instead of being dropped.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, types.NewValidationError("failed to read request body"))
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		s.writeError(w, types.NewValidationError("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// writeError maps the error taxonomy onto HTTP statuses: validation
// problems are the caller's fault, digest/upstream failures are a bad
// gateway, anything else is internal.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch types.ErrorCode(err) {
	case types.CodeValidation:
		status = http.StatusBadRequest
	case types.CodeAuth, types.CodeUpstream:
		status = http.StatusBadGateway
	}

	s.logger.Printf("request failed (%d): %v", status, err)
	writeJSON(w, status, types.NewAPIErrorBody(err))
}

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
