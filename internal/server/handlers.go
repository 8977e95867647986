package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/logger"
	"github.com/jonathan/ats-scorer/internal/observability"
	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/types"
)

// decodeBody reads a JSON request body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrInvalidBody{Cause: err}
	}
	return nil
}

// requestContext applies the per-request timeout, if configured.
func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if s.requestTimeout > 0 {
		return context.WithTimeout(r.Context(), s.requestTimeout)
	}
	return context.WithCancel(r.Context())
}

// requestLogger returns the server logger tagged with the request id.
func (s *Server) requestLogger(ctx context.Context) *zap.Logger {
	if id, ok := observability.RequestID(ctx); ok {
		return s.log.With(zap.String(logger.FieldRequestID, id))
	}
	return s.log
}

// scoreError writes a score endpoint failure; ats_score is always present.
func (s *Server) scoreError(ctx context.Context, w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	s.logFailure(ctx, "scoring failed", status, err)
	s.jsonResponse(w, status, types.ScoreErrorResponse{Error: ErrorMessage(err)})
}

func (s *Server) logFailure(ctx context.Context, msg string, status int, err error) {
	log := s.requestLogger(ctx)
	if status >= http.StatusInternalServerError {
		log.Error(msg, zap.Int("status", status), zap.Error(err))
		return
	}
	log.Info(msg, zap.Int("status", status), zap.Error(err))
}

// handleScore calculates the weighted ATS score of a resume against a JD
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.scoreError(r.Context(), w, err)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	resp, err := s.scorer.Run(ctx, req, nil)
	if err != nil {
		s.scoreError(r.Context(), w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleScoreStream scores like handleScore and streams stage progress via SSE
func (s *Server) handleScoreStream(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.scoreError(r.Context(), w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.scoreError(r.Context(), w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	log := s.requestLogger(r.Context())
	onProgress := func(_ context.Context, event pipeline.ProgressEvent) {
		if err := sse.WriteEvent(EventStage, event); err != nil {
			log.Warn("writing SSE event", zap.String(logger.FieldStage, event.Stage), zap.Error(err))
		}
	}

	resp, err := s.scorer.Run(ctx, req, onProgress)
	if err != nil {
		status := HTTPStatus(err)
		s.logFailure(r.Context(), "streaming scoring failed", status, err)
		if werr := sse.WriteError(status, ErrorMessage(err)); werr != nil {
			log.Warn("writing SSE error", zap.Error(werr))
		}
		return
	}

	if err := sse.WriteComplete(resp); err != nil {
		log.Warn("writing SSE completion", zap.Error(err))
	}
}

// handleKeyphrases returns the top keyphrases of a JD
func (s *Server) handleKeyphrases(w http.ResponseWriter, r *http.Request) {
	var req types.KeyphraseRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	keywords, err := s.keyphrases.Extract(ctx, req)
	if err != nil {
		status := HTTPStatus(err)
		s.logFailure(r.Context(), "keyphrase extraction failed", status, err)
		s.errorResponse(w, status, ErrorMessage(err))
		return
	}

	s.jsonResponse(w, http.StatusOK, types.KeyphraseResponse{Keywords: keywords})
}
