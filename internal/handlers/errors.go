package handlers

import (
	"errors"
	"net/http"

	"carlog/internal/service"

	"github.com/gin-gonic/gin"
)

// User-facing messages, kept in the UI's language.
const (
	msgDuplicateUsername    = "Este usuário já existe."
	msgInvalidCredentials   = "Usuário ou senha inválidos."
	msgWrongCurrentPassword = "Senha atual incorreta."
	msgPasswordMismatch     = "As novas senhas não coincidem."
	msgPasswordTooShort     = "A nova senha deve ter pelo menos 4 caracteres."
	msgCarNotFound          = "Veículo não encontrado."
	msgRecordNotFound       = "Registro não encontrado."
	msgInternal             = "Não foi possível concluir a operação."
)

// serviceError maps a domain error to its HTTP status and localized message.
// Unknown errors become a 500 with a generic message and a log line.
func (h *Handler) serviceError(c *gin.Context, err error, logKey string) {
	status, msg := http.StatusInternalServerError, msgInternal

	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		status, msg = http.StatusConflict, msgDuplicateUsername
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, service.ErrWrongCurrentPassword):
		status, msg = http.StatusBadRequest, msgWrongCurrentPassword
	case errors.Is(err, service.ErrPasswordMismatch):
		status, msg = http.StatusBadRequest, msgPasswordMismatch
	case errors.Is(err, service.ErrPasswordTooShort):
		status, msg = http.StatusBadRequest, msgPasswordTooShort
	case errors.Is(err, service.ErrCarNotFound):
		status, msg = http.StatusNotFound, msgCarNotFound
	case errors.Is(err, service.ErrRecordNotFound):
		status, msg = http.StatusNotFound, msgRecordNotFound
	case errors.Is(err, service.ErrInvalidToken):
		status, msg = http.StatusUnauthorized, "invalid or expired token"
	}

	if status == http.StatusInternalServerError && h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 JSON on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// requireConfirm is the destructive-action guard: deletes must carry
// ?confirm=true. Without it the confirmation prompt is returned as the error.
func requireConfirm(c *gin.Context, prompt string) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": prompt})
	return false
}
