// Package host abstracts the Mini App chrome (alerts, confirmations,
// sending results back to the chat) so services never touch the Telegram
// WebApp bridge directly and can run headless in tests.
package host

import "context"

type Capabilities interface {
	ShowAlert(ctx context.Context, message string) error
	ShowConfirm(ctx context.Context, message string) (bool, error)
	SendResult(ctx context.Context, payload []byte) error
}

// Nop is the default when no host chrome is attached; confirmations answer
// yes so server-side flows proceed.
type Nop struct{}

func (Nop) ShowAlert(ctx context.Context, message string) error { return nil }

func (Nop) ShowConfirm(ctx context.Context, message string) (bool, error) { return true, nil }

func (Nop) SendResult(ctx context.Context, payload []byte) error { return nil }
