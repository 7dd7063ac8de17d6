package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/infra/http/middleware"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type IntakePublisher interface {
	PublishIntake(ctx context.Context, input usecase.IntakeLeadInput, correlationID string) error
}

type LeadIntaker interface {
	Execute(ctx context.Context, input usecase.IntakeLeadInput) (*entity.Lead, error)
}

// WebhookHandler recebe leads de formulários e landing pages. Com RabbitMQ
// configurado o lead vai para a fila; sem ele (ou se a fila falhar) grava direto.
type WebhookHandler struct {
	Producer IntakePublisher
	Intake   LeadIntaker
	Secret   string
	Log      logger.Logger
}

const signatureHeader = "X-Webhook-Signature"

func NewWebhookHandler(producer IntakePublisher, intake LeadIntaker, secret string, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{Producer: producer, Intake: intake, Secret: secret, Log: log.With("component", "webhook")}
}

// Sign devolve o HMAC-SHA256 (hex) que o formulário manda no header.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *WebhookHandler) validSignature(body []byte, signature string) bool {
	if h.Secret == "" {
		return true
	}
	return hmac.Equal([]byte(Sign(body, h.Secret)), []byte(signature))
}

// POST /webhook/leads
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		return
	}

	if !h.validSignature(body, r.Header.Get(signatureHeader)) {
		h.Log.Warn("🚫 Assinatura do webhook inválida", "ip", middleware.ClientIP(r))
		writeErrorResponse(w, http.StatusUnauthorized, usecase.CodeUnauthorized, "assinatura inválida")
		return
	}

	var input usecase.IntakeLeadInput
	if err := json.Unmarshal(body, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	if errs := usecase.ValidateStruct(input); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, APIResponse{Error: usecase.CodeValidation, Message: "dados inválidos", Fields: errs})
		return
	}

	reqID := chimw.GetReqID(r.Context())

	if h.Producer != nil {
		err := h.Producer.PublishIntake(r.Context(), input, reqID)
		if err == nil {
			h.Log.Info("📤 Lead enfileirado", "request_id", reqID, "origin", input.Origin)
			middleware.RecordLeadCreated("webhook")
			writeJSON(w, http.StatusAccepted, map[string]bool{"queued": true})
			return
		}
		h.Log.Warn("⚠️ Falha ao enfileirar lead, gravando direto", "request_id", reqID, "error", err)
	}

	lead, err := h.Intake.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Log, "intake_lead", err)
		return
	}

	middleware.RecordLeadCreated("webhook")
	writeJSON(w, http.StatusCreated, lead)
}
