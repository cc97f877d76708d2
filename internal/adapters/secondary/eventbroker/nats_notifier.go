package eventbroker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/CarlosDanielOK/snappy-back/internal/core/domain"
	"github.com/CarlosDanielOK/snappy-back/internal/core/ports"
)

const subjectNotificationRequested = "notification.requested"

type NatsNotifier struct {
	nc *nats.Conn
}

func NewNatsNotifier(nc *nats.Conn) ports.NotificationPublisher {
	return &NatsNotifier{nc: nc}
}

// Structure de l'event (contract implicite avec le service de notifications)
type notificationRequestedEvent struct {
	Content     string `json:"content"`
	Type        string `json:"type"`
	RecipientID string `json:"user_id"`
	SenderID    string `json:"sender_user"`
}

// Publish envoie la demande de notification en fire-and-forget.
// Pas de JetStream ni d'ACK ici : la mutation du graphe est déjà commitée,
// l'appelant loggue un éventuel échec et n'attend rien de plus.
func (p *NatsNotifier) Publish(ctx context.Context, notification domain.Notification) error {
	event := notificationRequestedEvent{
		Content:     notification.Content,
		Type:        string(notification.Type),
		RecipientID: notification.RecipientID,
		SenderID:    notification.SenderID,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	msg := &nats.Msg{
		Subject: subjectNotificationRequested,
		Data:    data,
		Header:  nats.Header{},
	}
	// Injection du contexte de trace dans les headers NATS pour que le
	// service de notifications raccroche ses spans aux nôtres.
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(msg.Header))

	return p.nc.PublishMsg(msg)
}
