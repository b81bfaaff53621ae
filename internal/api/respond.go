package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "venue-intelligence/internal/common/errors"
)

func statusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeInvalidFilterFormat:
		return http.StatusBadRequest
	case apperrors.ErrCodePlanNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeCatalogTimeout, apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCatalogQueryFailed,
		apperrors.ErrCodeSearchQueryFailed,
		apperrors.ErrCodePlanStoreFailed,
		apperrors.ErrCodeExternalService:
		return http.StatusBadGateway
	case apperrors.ErrCodeAnalysisUnavailable, apperrors.ErrCodeOracleUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	stdErr := apperrors.Normalize(err)
	status := statusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error", map[string]interface{}{
			"code":    string(stdErr.Code),
			"details": stdErr.Details,
		})
	}
	writeJSON(w, status, stdErr)
}

// decode reads a single JSON document into dst. Any problem is a validation
// error.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewValidationError("request body is empty")
		}
		return apperrors.NewValidationError(fmt.Sprintf("decode request body: %v", err))
	}
	if dec.More() {
		return apperrors.NewValidationError("request body must hold a single JSON object")
	}
	return nil
}
