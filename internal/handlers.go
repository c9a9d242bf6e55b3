package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e APIError) Error() string {
	return e.Message
}

func NewAPIError(message string, status int) APIError {
	return APIError{Message: message, Status: status}
}

func writeError(w http.ResponseWriter, err error, logger *Logger, r *http.Request) {
	var apiErr APIError
	if e, ok := err.(APIError); ok {
		apiErr = e
	} else {
		apiErr = NewAPIError("Internal server error", http.StatusInternalServerError)
	}

	requestID := GetRequestID(r.Context())

	logger.Error("api_error").
		Component("http").
		Operation("write_error").
		HTTP(r.Method, r.URL.Path, apiErr.Status).
		Request(r.UserAgent(), r.RemoteAddr, requestID).
		Err(err).
		ErrorCode(strconv.Itoa(apiErr.Status)).
		Log()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": apiErr.Message,
	})
}

func writeJSON(w http.ResponseWriter, data interface{}, logger *Logger, r *http.Request) {
	requestID := GetRequestID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("json_encode_failed").
			Component("http").
			Operation("write_json").
			Request("", "", requestID).
			Err(err).
			Log()
	}
}

func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func withRateLimit(rateLimiter RateLimiterInterface, key string, logger *Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			allowed, err := rateLimiter.Allow(r.Context(), key)
			if err != nil {
				logger.Error("rate_limiter_error").
					Component("rate_limiter").
					Operation("check_limit").
					Request("", "", requestID).
					Err(err).
					Meta("key", key).
					Log()
				writeError(w, NewAPIError("Rate limiter error", http.StatusInternalServerError), logger, r)
				return
			}

			if !allowed {
				logger.Warn("rate_limit_exceeded").
					Component("rate_limiter").
					Operation("check_limit").
					Request("", "", requestID).
					Meta("key", key).
					Log()
				writeError(w, NewAPIError("Rate limit exceeded", http.StatusTooManyRequests), logger, r)
				return
			}

			next(w, r)
		}
	}
}

// classifyHistoryError maps pipeline failures onto the endpoint's error
// contract, matching on the upstream numeric status exclusively.
func classifyHistoryError(err error, handle string) APIError {
	if errors.Is(err, ErrAPIKeyMissing) {
		return NewAPIError("API key is not configured.", http.StatusInternalServerError)
	}
	if errors.Is(err, ErrEmptyHandle) {
		return NewAPIError("Summoner name is required.", http.StatusBadRequest)
	}

	var riotErr *RiotAPIError
	if errors.As(err, &riotErr) {
		switch riotErr.Status {
		case http.StatusNotFound:
			return NewAPIError(fmt.Sprintf("Summoner '%s' not found.", handle), http.StatusNotFound)
		case http.StatusForbidden:
			return NewAPIError("Riot API Key forbidden. Check if it expired or is invalid.", http.StatusForbidden)
		}
		return NewAPIError("Failed to fetch match history: "+riotErr.Message, http.StatusInternalServerError)
	}

	return NewAPIError("Failed to fetch match history: "+err.Error(), http.StatusInternalServerError)
}

func MatchHistoryHandler(history HistoryProvider, rateLimiter RateLimiterInterface, logger *Logger) http.HandlerFunc {
	return withCORS(withRateLimit(rateLimiter, "match-history", logger)(func(w http.ResponseWriter, r *http.Request) {
		handle := strings.TrimSpace(r.URL.Query().Get("summonerName"))
		requestID := GetRequestID(r.Context())

		if handle == "" {
			logger.Warn("missing_summoner_name").
				Component("history").
				Operation("get_match_history").
				Request("", "", requestID).
				Log()
			writeError(w, NewAPIError("Summoner name is required.", http.StatusBadRequest), logger, r)
			return
		}

		logger.Info("match_history_request").
			Component("history").
			Operation("get_match_history").
			Request("", "", requestID).
			Summoner(handle).
			Log()

		result, err := history.GetMatchHistory(r.Context(), handle)
		if err != nil {
			writeError(w, classifyHistoryError(err, handle), logger, r)
			return
		}

		writeJSON(w, result, logger, r)
	}))
}

func HealthHandler(logger *Logger) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("health_check").
			Component("health").
			Operation("check").
			Log()

		writeJSON(w, map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		}, logger, r)
	})
}

func MetricsHandler(logger *Logger, metrics *MetricsCollector) http.HandlerFunc {
	return withCORS(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		logger.Debug("metrics_request").
			Component("metrics").
			Operation("get_metrics").
			Request("", "", requestID).
			Log()

		writeJSON(w, metrics.GetMetrics(), logger, r)
	})
}
