package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/construsol/proposal-service/internal/domain/dto"
	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/i18n"
	"github.com/construsol/proposal-service/internal/logger"
)

// ErrorHandler returns a middleware that handles gin context errors.
// Handlers attach domain errors with c.Error and this middleware maps
// them to the error taxonomy: status code, i18n message key and
// field-level details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID := GetRequestID(c)
		locale := i18n.GetLocale(c)

		log := logger.Logger()
		log.Error().
			Str("request_id", requestID).
			Str("error", err.Error()).
			Str("kind", string(errs.KindOf(err))).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}

		status, code, messageKey, details := classify(err)
		message := i18n.GetTranslator().Translate(messageKey, locale)
		errorResp := dto.NewError(code, message).WithRequestID(requestID)
		errorResp.Details = details
		c.JSON(status, errorResp)
	}
}

// classify maps a domain error to HTTP status, response code, i18n key
// and optional field details.
func classify(err error) (int, string, string, map[string]string) {
	var ve *errs.ValidationError
	var ce *errs.CatalogLookupError
	var fe *errs.FormulaError
	switch {
	case errors.As(err, &ve):
		details := make(map[string]string, len(ve.Violations))
		for _, v := range ve.Violations {
			details[v.Field] = v.Message
		}
		return http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyValidationFailed, details
	case errors.As(err, &ce):
		return http.StatusNotFound, dto.ErrCodeNotFound, i18n.ErrKeyProductNotFound,
			map[string]string{"product_code": ce.Code}
	case errors.As(err, &fe):
		return http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidFormula,
			map[string]string{"formula": fe.Formula}
	case errors.Is(err, errs.ErrComputationTimeout):
		return http.StatusGatewayTimeout, dto.ErrCodeTimeout, i18n.ErrKeyComputationTimeout, nil
	case errors.Is(err, errs.ErrSuperseded):
		return http.StatusConflict, dto.ErrCodeConflict, i18n.ErrKeySuperseded, nil
	}
	return http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError, nil
}
