package notification

import (
	"time"

	"estagio/internal/common"
)

type Notification struct {
	ID          common.UUID `json:"id"`
	Title       string      `json:"titulo"`
	Body        string      `json:"mensagem"`
	Read        bool        `json:"lida"`
	SenderID    common.UUID `json:"enviado_por_id"`
	RecipientID common.UUID `json:"destinatario_id"`
	SentAt      time.Time   `json:"data_envio"`
}

// WithSender is the recipient's inbox projection.
type WithSender struct {
	Notification
	SenderName string `json:"enviado_por_nome,omitempty"`
}
