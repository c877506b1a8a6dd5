// Package i18n provides internationalization support for the proposal service.
// It handles translation of user-facing messages and error messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (Brazilian Portuguese,
	// the portal's primary audience).
	DefaultLocale = "pt"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	// defaultTranslator is the singleton translator instance.
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: getDefaultMessages(),
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the translated message for the given key and locale.
// Falls back to DefaultLocale if the locale is not found.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	localeMessages, ok := t.messages[locale]
	if !ok {
		localeMessages = t.messages[DefaultLocale]
	}

	msg, ok := localeMessages[key]
	if !ok {
		// Fallback to default locale
		if defaultMessages := t.messages[DefaultLocale]; defaultMessages != nil {
			if fallbackMsg, exists := defaultMessages[key]; exists {
				return fallbackMsg
			}
		}
		return key
	}

	return msg
}

// GetLocale extracts the locale from the gin context.
// Checks Accept-Language header and falls back to DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// Parse Accept-Language header (e.g., "pt-BR,pt;q=0.9,en;q=0.8")
	parts := strings.Split(acceptLang, ",")
	if len(parts) > 0 {
		lang := strings.TrimSpace(strings.Split(parts[0], ";")[0])
		// Extract base language (e.g., "pt" from "pt-BR")
		if idx := strings.Index(lang, "-"); idx > 0 {
			lang = lang[:idx]
		}
		// Normalize to lowercase
		lang = strings.ToLower(lang)
		// Validate it's a supported locale
		if _, ok := getDefaultMessages()[lang]; ok {
			return lang
		}
	}

	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"pt": {
			// Error messages
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Corpo da requisição inválido",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.not_found":            "Não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.conflict":             "Conflito",
			"error.timeout":              "Tempo limite da requisição excedido",
			"error.validation_failed":    "Um ou mais campos são inválidos",
			"error.product_not_found":    "Produto não encontrado no catálogo",
			"error.invalid_formula":      "Fórmula de cálculo inválida",
			"error.computation_timeout":  "O cálculo demorou demais, tente novamente",
			"error.superseded":           "Requisição substituída por uma mais recente",
			"error.unknown_system":       "Sistema construtivo desconhecido",

			// Success messages
			"success.quote_computed":      "Quantitativo calculado com sucesso",
			"success.composition_updated": "Composição atualizada com sucesso",
		},
		"en": {
			// Error messages
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Invalid request body",
			"error.internal_error":       "An unexpected error occurred",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Conflict",
			"error.timeout":              "Request timed out",
			"error.validation_failed":    "One or more fields are invalid",
			"error.product_not_found":    "Product not found in catalog",
			"error.invalid_formula":      "Invalid calculation formula",
			"error.computation_timeout":  "The computation took too long, please retry",
			"error.superseded":           "Request superseded by a newer one",
			"error.unknown_system":       "Unknown construction system",

			// Success messages
			"success.quote_computed":      "Quantities computed successfully",
			"success.composition_updated": "Composition updated successfully",
		},
	}
}
