package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "ex.sales"
	DLXName      = "ex.sales.dlx" // Dead Letter Exchange

	IntakeQueue    = "q.lead-intake"
	SaleAlertQueue = "q.sale-alerts"

	RoutingIntake        = "lead.intake"
	RoutingStatusChanged = "lead.status_changed"
	RoutingSale          = "lead.sale"
)

// binding liga uma fila (e sua DLQ) a uma routing key.
type binding struct {
	Queue      string
	RoutingKey string
}

var bindings = []binding{
	{Queue: IntakeQueue, RoutingKey: RoutingIntake},
	{Queue: SaleAlertQueue, RoutingKey: RoutingSale},
}

type RabbitMQ struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("falha ao abrir canal: %w", err)
	}

	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, Ch: ch}, nil
}

// setupTopology: exchange topic para os eventos e, para cada fila
// consumida aqui, uma DLQ atrás da DLX.
func setupTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(DLXName, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil); err != nil {
		return err
	}

	for _, b := range bindings {
		dlq := b.Queue + ".dlq"
		if _, err := ch.QueueDeclare(dlq, true, false, false, false, nil); err != nil {
			return err
		}
		if err := ch.QueueBind(dlq, b.RoutingKey, DLXName, false, nil); err != nil {
			return err
		}

		args := amqp.Table{
			"x-dead-letter-exchange":    DLXName,      // Se der Nack, manda pra DLX
			"x-dead-letter-routing-key": b.RoutingKey, // Com essa chave
		}
		if _, err := ch.QueueDeclare(b.Queue, true, false, false, false, args); err != nil {
			return err
		}
		if err := ch.QueueBind(b.Queue, b.RoutingKey, ExchangeName, false, nil); err != nil {
			return err
		}
	}
	return nil
}

func (r *RabbitMQ) Close() {
	if r.Ch != nil {
		r.Ch.Close()
	}
	if r.Conn != nil {
		r.Conn.Close()
	}
}
