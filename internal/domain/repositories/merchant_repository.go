package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"revebot.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByDomain(ctx context.Context, domain string) (*entities.Merchant, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error
	UpdateAnalysedAt(ctx context.Context, id uuid.UUID, analysedAt time.Time) error
	List(ctx context.Context) ([]*entities.Merchant, error)
}
