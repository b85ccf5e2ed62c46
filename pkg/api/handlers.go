package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tracesplit/pkg/buildinfo"
	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/observability"
	"github.com/matzehuels/tracesplit/pkg/pipeline"
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type attributeJSON struct {
	ValType     schema.ValType `json:"valType"`
	Dflt        any            `json:"dflt,omitempty"`
	ArrayOk     bool           `json:"arrayOk,omitempty"`
	Values      []any          `json:"values,omitempty"`
	Description string         `json:"description,omitempty"`
}

type transformJSON struct {
	Name       string                   `json:"name"`
	Attributes map[string]attributeJSON `json:"attributes"`
}

type splitRequest struct {
	Data    []trace.Trace    `json:"data"`
	Layout  map[string]any   `json:"layout,omitempty"`
	Options pipeline.Options `json:"options"`
}

type splitResponse struct {
	*pipeline.Result
	Layout map[string]any `json:"layout,omitempty"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleTraceTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"trace_types": s.runner.Schema().TraceTypes()})
}

func (s *Server) handleTransforms(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Transforms()
	out := make([]transformJSON, 0, len(reg.Names()))
	for _, name := range reg.Names() {
		mod, err := reg.Lookup(name)
		if err != nil {
			continue
		}
		attrs := make(map[string]attributeJSON)
		for k, a := range mod.Attributes() {
			attrs[k] = attributeJSON{
				ValType:     a.ValType,
				Dflt:        a.Dflt,
				ArrayOk:     a.ArrayOk,
				Values:      a.Values,
				Description: a.Description,
			}
		}
		out = append(out, transformJSON{Name: name, Attributes: attrs})
	}
	writeJSON(w, http.StatusOK, map[string][]transformJSON{"transforms": out})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	mod, err := s.runner.Transforms().Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, http.StatusNotFound, err)
		return
	}

	in := map[string]any{}
	if r.Method == http.MethodPost {
		if err := decodeBody(w, r, &in); err != nil {
			s.writeError(w, r, 0, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, mod.SupplyDefaults(in))
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, 0, err)
		return
	}
	if req.Data == nil {
		s.writeError(w, r, 0, errors.New(errors.ErrCodeInvalidInput, "request has no data"))
		return
	}

	opts := req.Options
	opts.Logger = s.logger.With("request", RequestIDFrom(r.Context()))
	res, err := s.runner.Execute(r.Context(), req.Data, opts)
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}
	writeJSON(w, http.StatusOK, splitResponse{Result: res, Layout: req.Layout})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return errors.New(errors.ErrCodeInvalidFormat, "content type must be application/json, got %s", ct)
	}
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "empty request body")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

// writeError answers with err. A zero status is derived from the error code.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status == 0 {
		status = http.StatusInternalServerError
		if errors.IsClientError(err) {
			status = http.StatusBadRequest
		}
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
