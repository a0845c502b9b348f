package repositories

import (
	"context"

	"revebot.backend/internal/domain/entities"
)

// TaskQueue enqueues fire-and-forget work onto a named queue
type TaskQueue interface {
	Enqueue(ctx context.Context, queue, payload string) error
}

// Mailer sends operational notification mail
type Mailer interface {
	SendMerchantRegistered(ctx context.Context, merchant *entities.Merchant) error
}

// ChatWidgetRegistrar installs or refreshes the storefront chat widget.
// Register is idempotent; repeated calls reflect the current chat state.
type ChatWidgetRegistrar interface {
	Register(ctx context.Context, merchant *entities.Merchant, enabled, chatEnabled bool) error
}
