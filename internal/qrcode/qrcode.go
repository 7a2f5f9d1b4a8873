package qrcode

import (
	"fmt"
	"net/url"
)

const defaultBaseURL = "https://api.qrserver.com/v1/create-qr-code/"

// Generator builds QR code image URLs for issued tickets. The encoded
// payload is derived from the ticket id and tier name only; the image is
// rendered by the external service on demand.
type Generator struct {
	baseURL string
	size    string
}

func NewGenerator() *Generator {
	return &Generator{
		baseURL: defaultBaseURL,
		size:    "300x300",
	}
}

func (g *Generator) GenerateURL(ticketID int64, ticketTypeName string) string {
	data := fmt.Sprintf("ticket:%d:%s", ticketID, ticketTypeName)

	return fmt.Sprintf("%s?size=%s&data=%s", g.baseURL, g.size, url.QueryEscape(data))
}
