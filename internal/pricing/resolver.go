package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dukkonapp/dukkon-backend/pkg/db/models"
	"github.com/dukkonapp/dukkon-backend/pkg/enums"
)

// Resolution is the outcome of a price lookup for one cart line.
type Resolution struct {
	UnitPrice decimal.Decimal
	// TierID is set when a price tier supplied the price; nil means the
	// variant's base price applied.
	TierID   *uuid.UUID
	TierType enums.PriceTierType
}

// Resolve picks the unit price for a variant at the given quantity.
//
// A tier is eligible when its quantity window contains qty and its
// customer group admits the buyer. Among eligible tiers the one with
// the largest minimum quantity wins, so overlapping windows resolve to
// the most specific bulk break. On an equal minimum a group-bound tier
// beats an open one regardless of slice order. With no eligible tier
// the variant's base price stands.
func Resolve(variant *models.ProductVariant, tiers []models.PriceTier, qty decimal.Decimal, buyer enums.CustomerTier) Resolution {
	base := Resolution{UnitPrice: variant.Price}
	if qty.Sign() <= 0 {
		return base
	}

	var best *models.PriceTier
	for i := range tiers {
		tier := &tiers[i]
		if qty.LessThan(tier.MinQuantity) {
			continue
		}
		if tier.MaxQuantity != nil && qty.GreaterThan(*tier.MaxQuantity) {
			continue
		}
		if !groupAdmits(tier, buyer) {
			continue
		}
		if best == nil || beats(tier, best) {
			best = tier
		}
	}

	if best == nil {
		return base
	}
	id := best.ID
	return Resolution{
		UnitPrice: best.Price,
		TierID:    &id,
		TierType:  best.TierType,
	}
}

// beats ranks two eligible tiers: higher minimum quantity first, and
// on a tie the tier pinned to a customer group over an open tier.
func beats(candidate, best *models.PriceTier) bool {
	if !candidate.MinQuantity.Equal(best.MinQuantity) {
		return candidate.MinQuantity.GreaterThan(best.MinQuantity)
	}
	return candidate.CustomerGroup != nil && best.CustomerGroup == nil
}

// groupAdmits applies the customer-group restriction. Wholesaler and
// VIP buyers see open tiers plus their own group's tiers. Retail and
// anonymous buyers see every quantity-eligible tier, including group
// tiers; group pricing gates an extra price on known buyers rather
// than fencing walk-ins out of quantity breaks.
func groupAdmits(tier *models.PriceTier, buyer enums.CustomerTier) bool {
	switch buyer {
	case enums.CustomerTierWholesaler:
		return tier.CustomerGroup == nil ||
			*tier.CustomerGroup == "wholesale" ||
			tier.TierType == enums.PriceTierTypeWholesaler
	case enums.CustomerTierVIP:
		return tier.CustomerGroup == nil ||
			*tier.CustomerGroup == "vip" ||
			tier.TierType == enums.PriceTierTypeVIP
	default:
		return true
	}
}
