package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/pipeline"
	"github.com/kumar045/seo-website/internal/store"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to an HTTP status and a message that is safe
// to show. Unknown errors never leak their text.
func statusFor(err error) (int, string) {
	var ve *pipeline.ValidationError
	var ge *pipeline.GenerationError
	var be *badRequest
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.As(err, &be):
		return http.StatusBadRequest, be.msg
	case errors.Is(err, store.ErrNotFound), errors.Is(err, jobs.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, store.ErrSlugTaken):
		return http.StatusConflict, "a record with this slug already exists"
	case errors.Is(err, store.ErrKeywordTracked):
		return http.StatusConflict, "keyword is already tracked for this surface"
	case errors.As(err, &ge):
		return http.StatusBadGateway, "content generation failed, please try again"
	}
	return http.StatusInternalServerError, "internal error"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: msg})
}

// badRequest is a malformed request body or query parameter.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string {
	return e.msg
}

func badRequestf(format string, args ...any) error {
	return &badRequest{msg: fmt.Sprintf(format, args...)}
}

// decodeBody reads a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequestf("request body is empty")
		}
		return badRequestf("invalid request body: %v", err)
	}
	return nil
}
