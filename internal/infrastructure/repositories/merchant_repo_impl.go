package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"revebot.backend/internal/domain/entities"
	domainerrors "revebot.backend/internal/domain/errors"
	"revebot.backend/internal/infrastructure/models"
)

// MerchantRepositoryImpl implements MerchantRepository
type MerchantRepositoryImpl struct {
	db *gorm.DB
}

func NewMerchantRepository(db *gorm.DB) *MerchantRepositoryImpl {
	return &MerchantRepositoryImpl{db: db}
}

func (r *MerchantRepositoryImpl) Create(ctx context.Context, merchant *entities.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = uuid.New()
	}
	if merchant.Status == "" {
		merchant.Status = entities.MerchantStatusNew
	}
	merchant.CreatedAt = time.Now()
	merchant.UpdatedAt = merchant.CreatedAt

	m, err := toModel(merchant)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MerchantRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m)
}

func (r *MerchantRepositoryImpl) GetByDomain(ctx context.Context, domain string) (*entities.Merchant, error) {
	var m models.Merchant
	if err := r.db.WithContext(ctx).Where("domain = ?", domain).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toEntity(&m)
}

func (r *MerchantRepositoryImpl) Update(ctx context.Context, merchant *entities.Merchant) error {
	merchant.UpdatedAt = time.Now()
	m, err := toModel(merchant)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", merchant.ID).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MerchantRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	return r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *MerchantRepositoryImpl) UpdateAnalysedAt(ctx context.Context, id uuid.UUID, analysedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"analysed_at": analysedAt,
			"updated_at":  time.Now(),
		}).Error
}

func (r *MerchantRepositoryImpl) List(ctx context.Context) ([]*entities.Merchant, error) {
	var ms []models.Merchant
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	merchants := make([]*entities.Merchant, 0, len(ms))
	for i := range ms {
		merchant, err := toEntity(&ms[i])
		if err != nil {
			return nil, err
		}
		merchants = append(merchants, merchant)
	}
	return merchants, nil
}

// toModel flattens the structured entity into the denormalized columns
func toModel(merchant *entities.Merchant) (*models.Merchant, error) {
	tiers := [entities.TierCount]string{}
	for i := 0; i < entities.TierCount; i++ {
		if i >= len(merchant.Tiers) || merchant.Tiers[i] == nil {
			continue
		}
		encoded, err := json.Marshal(merchant.Tiers[i])
		if err != nil {
			return nil, err
		}
		tiers[i] = string(encoded)
	}

	m := &models.Merchant{
		ID:               merchant.ID,
		Domain:           merchant.Domain,
		BusinessName:     merchant.BusinessName,
		Phone:            merchant.Phone,
		Phones:           strings.Join(merchant.Phones, ","),
		AwayMessage:      merchant.AwayMessage,
		SmsEnabled:       merchant.SmsEnabled,
		SmsTemplate:      merchant.SmsTemplate,
		FacebookEnabled:  merchant.FacebookEnabled,
		TwitterEnabled:   merchant.TwitterEnabled,
		AgentEnabled:     merchant.AgentEnabled,
		CheckoutInterval: merchant.CheckoutInterval,
		ChatEnabled:      merchant.ChatEnabled,
		Tiers0:           tiers[0],
		Tiers1:           tiers[1],
		Tiers2:           tiers[2],
		Progress:         merchant.Progress,
		Status:           string(merchant.Status),
		Package:          merchant.Package,
		PendingPackage:   merchant.PendingPackage,
		CreatedAt:        merchant.CreatedAt,
		UpdatedAt:        merchant.UpdatedAt,
	}
	if merchant.PendingSince.Valid {
		t := merchant.PendingSince.Time
		m.PendingSince = &t
	}
	if merchant.AnalysedAt.Valid {
		t := merchant.AnalysedAt.Time
		m.AnalysedAt = &t
	}
	return m, nil
}

// toEntity unpacks the denormalized columns back into structured fields.
// Tiers always comes back with TierCount slots so callers never index out
// of range; unset tiers stay nil.
func toEntity(m *models.Merchant) (*entities.Merchant, error) {
	var phones []string
	if m.Phones != "" {
		phones = strings.Split(m.Phones, ",")
	}

	tiers := make([][]entities.TierEntry, entities.TierCount)
	for i, raw := range []string{m.Tiers0, m.Tiers1, m.Tiers2} {
		if raw == "" {
			continue
		}
		var entries []entities.TierEntry
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return nil, err
		}
		tiers[i] = entries
	}

	merchant := &entities.Merchant{
		ID:               m.ID,
		Domain:           m.Domain,
		BusinessName:     m.BusinessName,
		Phone:            m.Phone,
		Phones:           phones,
		AwayMessage:      m.AwayMessage,
		SmsEnabled:       m.SmsEnabled,
		SmsTemplate:      m.SmsTemplate,
		FacebookEnabled:  m.FacebookEnabled,
		TwitterEnabled:   m.TwitterEnabled,
		AgentEnabled:     m.AgentEnabled,
		CheckoutInterval: m.CheckoutInterval,
		ChatEnabled:      m.ChatEnabled,
		Tiers:            tiers,
		Progress:         m.Progress,
		Status:           entities.MerchantStatus(m.Status),
		Package:          m.Package,
		PendingPackage:   m.PendingPackage,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.PendingSince != nil {
		merchant.PendingSince = null.TimeFrom(*m.PendingSince)
	}
	if m.AnalysedAt != nil {
		merchant.AnalysedAt = null.TimeFrom(*m.AnalysedAt)
	}
	return merchant, nil
}
