package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

// LeadIntaker grava o lead recebido pela fila de intake.
type LeadIntaker interface {
	Execute(ctx context.Context, input usecase.IntakeLeadInput) (*entity.Lead, error)
}

// SaleNotifier avisa a gestão quando uma venda é fechada.
type SaleNotifier interface {
	SendSaleAlert(ctx context.Context, sale entity.LeadSale) error
}

type Worker struct {
	Channel *amqp.Channel
	Intake  LeadIntaker
	Sales   SaleNotifier
	Log     logger.Logger
}

func NewWorker(ch *amqp.Channel, intake LeadIntaker, sales SaleNotifier, log logger.Logger) *Worker {
	return &Worker{
		Channel: ch,
		Intake:  intake,
		Sales:   sales,
		Log:     log.With("component", "worker"),
	}
}

// Start consome as filas até o contexto cancelar.
func (w *Worker) Start(ctx context.Context) error {
	intake, err := w.consume(IntakeQueue)
	if err != nil {
		return err
	}
	sales, err := w.consume(SaleAlertQueue)
	if err != nil {
		return err
	}

	w.Log.Info(" [*] Worker rodando", "queues", []string{IntakeQueue, SaleAlertQueue})

	for {
		select {
		case <-ctx.Done():
			w.Log.Info("⚠️ Worker encerrado")
			return nil
		case d, ok := <-intake:
			if !ok {
				return fmt.Errorf("canal da fila %s fechado", IntakeQueue)
			}
			w.handleDelivery(ctx, d)
		case d, ok := <-sales:
			if !ok {
				return fmt.Errorf("canal da fila %s fechado", SaleAlertQueue)
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) consume(queue string) (<-chan amqp.Delivery, error) {
	msgs, err := w.Channel.Consume(
		queue, // fila
		"",    // consumer
		false, // auto-ack (manual)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao registrar consumidor em %s: %w", queue, err)
	}
	return msgs, nil
}

// handleDelivery: mensagem malformada ou com erro vai para a DLQ
// (Nack sem requeue); sucesso dá Ack.
func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	var env Envelope
	if err := json.Unmarshal(d.Body, &env); err != nil {
		w.Log.Error("❌ [WORKER] JSON inválido", "error", err, "routing_key", d.RoutingKey)
		d.Nack(false, false)
		return
	}

	log := w.Log.With("event_id", env.Meta.ID, "type", env.Meta.Type)
	log.Debug("📥 [WORKER] mensagem recebida")

	if err := w.process(ctx, env); err != nil {
		log.Error("❌ [WORKER] erro no processamento", "error", err)
		d.Nack(false, false)
		return
	}

	log.Info("✅ [WORKER] mensagem processada")
	d.Ack(false)
}

func (w *Worker) process(ctx context.Context, env Envelope) error {
	switch env.Meta.Type {
	case entity.EventLeadIntake:
		var input usecase.IntakeLeadInput
		if err := json.Unmarshal(env.Data, &input); err != nil {
			return fmt.Errorf("payload de intake inválido: %w", err)
		}
		_, err := w.Intake.Execute(ctx, input)
		return err

	case entity.EventLeadSale:
		if w.Sales == nil {
			return nil
		}
		var sale entity.LeadSale
		if err := json.Unmarshal(env.Data, &sale); err != nil {
			return fmt.Errorf("payload de venda inválido: %w", err)
		}
		return w.Sales.SendSaleAlert(ctx, sale)

	default:
		// Tipo desconhecido: só loga e confirma para não travar a fila
		w.Log.Warn("⚠️ tipo de evento desconhecido", "type", env.Meta.Type)
		return nil
	}
}
