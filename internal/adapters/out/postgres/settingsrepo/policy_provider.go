// Package settingsrepo reads the operating policy from the settings table.
// The policy document is stored as a single JSON value and parsed once into
// an immutable domain Policy.
package settingsrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/policy"
	"pizzeria/internal/pkg/errs"
)

const policyKey = "operating_policy"

// SettingsDTO is the database representation of one settings entry.
type SettingsDTO struct {
	Key   string         `gorm:"primaryKey"`
	Value datatypes.JSON `gorm:"type:jsonb"`
}

// TableName overrides the default GORM table name.
func (SettingsDTO) TableName() string {
	return "settings"
}

type zoneDocument struct {
	Zip  string `json:"zip"`
	City string `json:"city"`
}

type zoneTierDocument struct {
	MinOrder decimal.Decimal `json:"min_order"`
	Zones    []zoneDocument  `json:"zones"`
}

type policyDocument struct {
	Zones                 []zoneTierDocument `json:"zones"`
	RewardCost            int                `json:"reward_cost"`
	StampCategories       []string           `json:"stamp_categories"`
	PromoBuyCount         int                `json:"promo_buy_count"`
	DeliveryFee           decimal.Decimal    `json:"delivery_fee"`
	FreeDeliveryThreshold decimal.Decimal    `json:"free_delivery_threshold"`
}

// GormPolicyProvider implements PolicyProvider on top of the settings table.
// The parsed policy is cached for the lifetime of the process; changing the
// stored document requires a restart to take effect.
type GormPolicyProvider struct {
	db *gorm.DB

	mu     sync.Mutex
	cached *policy.Policy
}

// NewGormPolicyProvider creates a new settings-backed policy provider.
func NewGormPolicyProvider(db *gorm.DB) *GormPolicyProvider {
	return &GormPolicyProvider{db: db}
}

// Get returns the operating policy, loading and parsing it on first use.
func (p *GormPolicyProvider) Get(ctx context.Context) (policy.Policy, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil {
		return *p.cached, nil
	}

	var dto SettingsDTO
	err := p.db.WithContext(ctx).First(&dto, "key = ?", policyKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.Policy{}, errs.NewObjectNotFoundError("setting", policyKey)
		}
		return policy.Policy{}, err
	}

	parsed, err := parsePolicy(dto.Value)
	if err != nil {
		return policy.Policy{}, err
	}

	p.cached = &parsed
	return parsed, nil
}

func parsePolicy(raw []byte) (policy.Policy, error) {
	var doc policyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return policy.Policy{}, errs.NewValueIsInvalidErrorWithCause(policyKey,
			fmt.Errorf("malformed policy document: %w", err))
	}

	tiers := make([]policy.ZoneTier, 0, len(doc.Zones))
	for _, tier := range doc.Zones {
		minOrder, err := kernel.NewMoney(tier.MinOrder)
		if err != nil {
			return policy.Policy{}, err
		}

		zones := make([]policy.Zone, 0, len(tier.Zones))
		for _, zone := range tier.Zones {
			zones = append(zones, policy.Zone{Zip: zone.Zip, City: zone.City})
		}
		tiers = append(tiers, policy.ZoneTier{MinOrder: minOrder, Zones: zones})
	}

	deliveryFee, err := kernel.NewMoney(doc.DeliveryFee)
	if err != nil {
		return policy.Policy{}, err
	}

	freeThreshold, err := kernel.NewMoney(doc.FreeDeliveryThreshold)
	if err != nil {
		return policy.Policy{}, err
	}

	return policy.NewPolicy(
		tiers,
		policy.LoyaltyProgram{RewardCost: doc.RewardCost, StampCategories: doc.StampCategories},
		policy.PromoOffer{BuyCount: doc.PromoBuyCount},
		deliveryFee,
		freeThreshold,
	)
}
