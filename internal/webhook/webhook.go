package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tessera-live/tessera/internal/domain"
)

// Notifier posts ticket confirmations to an external webhook. The caller
// bounds each call with its own context timeout and decides what to do
// with the error; a reservation is never rolled back for a failed send.
type Notifier struct {
	client *http.Client
	url    string
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		client: &http.Client{},
		url:    url,
	}
}

type confirmationPayload struct {
	TicketID       int64  `json:"ticket_id"`
	EventID        int64  `json:"event_id"`
	BuyerID        *int64 `json:"buyer_id,omitempty"`
	TicketTypeName string `json:"ticket_type_name"`
	Price          string `json:"price"`
	Status         string `json:"status"`
	QRCodeURL      string `json:"qr_code_url"`
}

func (n *Notifier) Send(ctx context.Context, t *domain.TicketWithType) error {
	const op = "webhook.Notifier.Send"

	if n.url == "" {
		return nil
	}

	payload := confirmationPayload{
		TicketID:       t.ID,
		EventID:        t.EventID,
		BuyerID:        t.BuyerID,
		TicketTypeName: t.TicketType.Name,
		Price:          t.TicketType.Price.String(),
		Status:         string(t.Status),
		QRCodeURL:      t.QRCode,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode)
	}

	return nil
}
