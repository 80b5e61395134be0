package v1

import (
	"errors"
	"net/http"
	"strings"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/pricing"
	"zeecrown-admin/pkg/logger"
	"zeecrown-admin/pkg/utils"
)

// writeUsecaseError maps usecase errors onto HTTP: validation 400, not found 404, anything else 500.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		var rsErr *pricing.RuleSetValidationError
		if errors.As(err, &rsErr) {
			utils.WriteErrorDetails(w, http.StatusBadRequest, "invalid shipping rules", rsErr.Problems)
			return
		}
		utils.WriteError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": "))
	case errors.Is(err, domain.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
