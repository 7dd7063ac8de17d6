package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/xavierca1/sales-os/internal/infra/http/middleware"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

const maxBodyBytes = 1 << 20

type APIResponse struct {
	Success bool                      `json:"success"`
	Data    interface{}               `json:"data,omitempty"`
	Error   string                    `json:"error,omitempty"`
	Message string                    `json:"message,omitempty"`
	Fields  []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data})
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeError(w, status, APIResponse{Error: code, Message: message})
}

func writeError(w http.ResponseWriter, status int, resp APIResponse) {
	resp.Success = false
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// writeUseCaseError traduz DomainError/TechnicalError para HTTP.
// operation vira label do store_errors_total.
func writeUseCaseError(w http.ResponseWriter, log logger.Logger, operation string, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		switch de.Code {
		case usecase.CodeLeadNotFound:
			status = http.StatusNotFound
		case usecase.CodeUnauthorized:
			status = http.StatusUnauthorized
		}
		writeError(w, status, APIResponse{Error: de.Code, Message: de.Message, Fields: de.Fields})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		middleware.RecordStoreError(operation)
		log.Error("❌ Erro técnico", "operation", operation, "code", te.Code, "error", te.Err)
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}

	log.Error("❌ Erro inesperado", "operation", operation, "error", err)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Erro interno do servidor")
}

// decodeJSON responde 400 quando o corpo é vazio ou inválido.
func decodeJSON(r *http.Request, w http.ResponseWriter, v interface{}) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil {
		return true
	}
	msg := "JSON inválido"
	if errors.Is(err, io.EOF) {
		msg = "corpo da requisição vazio"
	}
	writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", msg)
	return false
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.UserID(r.Context())
	if id == "" {
		writeErrorResponse(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "sessão ausente")
		return "", false
	}
	return id, true
}
