package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/jrsteele09/go-discord-activity/discord"
	apperrors "github.com/jrsteele09/go-discord-activity/internal/errors"
	"github.com/jrsteele09/go-discord-activity/oauth2"
	"github.com/rs/zerolog"
)

const (
	// genericExchangeError is the only failure text a caller ever sees.
	genericExchangeError = "Error exchanging code for token"
	maxTokenRequestBytes = 4 << 10
)

// Token exchanges an authorization code for an access token. Upstream failure
// details are logged and never written to the response.
func (s *Server) Token() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := s.requestLogger(r)

		var req oauth2.CodeExchangeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTokenRequestBytes)).Decode(&req); err != nil {
			s.metrics.ObserveExchange(resultInvalidRequest)
			logger.Warn().Err(apperrors.Wrapf(apperrors.ErrInvalidRequest, "decode body: %v", err)).Msg("token request body is not valid JSON")
			http.Error(w, apperrors.ErrInvalidRequest.Error(), http.StatusBadRequest)
			return
		}
		if err := s.validate.Struct(req); err != nil {
			s.metrics.ObserveExchange(resultInvalidRequest)
			logger.Warn().Err(apperrors.Wrapf(apperrors.ErrInvalidRequest, "validate: %v", err)).Msg("token request rejected")
			http.Error(w, apperrors.ErrInvalidRequest.Error(), http.StatusBadRequest)
			return
		}

		start := time.Now()
		accessToken, err := s.exchanger.Exchange(r.Context(), req.Code)
		s.metrics.ExchangeDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			result := exchangeResult(err)
			s.metrics.ObserveExchange(result)
			logExchangeFailure(logger, result, err)
			http.Error(w, genericExchangeError, http.StatusInternalServerError)
			return
		}
		if accessToken == "" {
			s.metrics.ObserveExchange(resultMalformedUpstream)
			logger.Error().Err(apperrors.ErrMalformedUpstreamResponse).Str("category", resultMalformedUpstream).Msg("No access token in response")
			http.Error(w, genericExchangeError, http.StatusInternalServerError)
			return
		}

		s.metrics.ObserveExchange(resultSuccess)
		w.Header().Set("Content-Type", contentTypeJSON)
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Pragma", "no-cache")
		_ = json.NewEncoder(w).Encode(oauth2.CodeExchangeResponse{AccessToken: accessToken})
	}
}

func exchangeResult(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrUpstreamUnavailable):
		return resultUnavailable
	case apperrors.Is(err, apperrors.ErrExchangeRejected):
		return resultRejected
	case apperrors.Is(err, apperrors.ErrMalformedUpstreamResponse):
		return resultMalformedUpstream
	default:
		return resultInternal
	}
}

func logExchangeFailure(logger *zerolog.Logger, result string, err error) {
	event := logger.Error().Err(err).Str("category", result)
	var exErr *discord.ExchangeError
	if apperrors.As(err, &exErr) {
		if exErr.Status != 0 {
			event = event.Int("upstream_status", exErr.Status)
		}
		if exErr.Body != "" {
			event = event.Str("upstream_body", exErr.Body)
		}
	}
	event.Msg("Error from Discord token endpoint")
}

// requestLogger returns the logger attached by RequestIDMiddleware, or the server logger.
func (s *Server) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
