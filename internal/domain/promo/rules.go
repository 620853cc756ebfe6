package promo

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/Averus89/shopapp/internal/domain/order"
)

// Rule variant identifiers used in configuration.
const (
	TypeAlternatingDiscount = "alternating_discount"
	TypeBonusUnit           = "bonus_unit"
)

// Config describes one promotion rule as data. Rules are keyed by product
// name; the variant decides which parameters apply.
type Config struct {
	// Product is the catalog product name the rule is keyed to.
	Product string `json:"product" yaml:"product"`
	// Type selects the rule variant: alternating_discount or bonus_unit.
	Type string `json:"type" yaml:"type"`
	// Percent is the discount applied by alternating_discount.
	Percent int `json:"percent" yaml:"percent"`
	// Every is the unit period: alternating_discount discounts every
	// Every-th unit, bonus_unit grants one free unit per Every paid units.
	// Defaults to 2.
	Every int `json:"every" yaml:"every"`
}

// Build converts rule configurations into engine rules, preserving order.
func Build(cfgs []Config) ([]Rule, error) {
	rules := make([]Rule, 0, len(cfgs))
	for _, cfg := range cfgs {
		if cfg.Product == "" {
			return nil, errors.New("promotion rule requires a product name")
		}
		every := cfg.Every
		if every == 0 {
			every = 2
		}
		if every < 1 {
			return nil, errors.Errorf("promotion rule for %q: every must be positive, got %d", cfg.Product, cfg.Every)
		}

		switch cfg.Type {
		case TypeAlternatingDiscount:
			if cfg.Percent < 0 || cfg.Percent > 100 {
				return nil, errors.Wrapf(order.ErrInvalidDiscount, "promotion rule for %q", cfg.Product)
			}
			rules = append(rules, &alternatingDiscount{
				product: cfg.Product,
				percent: cfg.Percent,
				every:   every,
			})
		case TypeBonusUnit:
			rules = append(rules, &bonusUnit{
				product: cfg.Product,
				every:   every,
			})
		default:
			return nil, errors.Errorf("unknown promotion rule type %q", cfg.Type)
		}
	}
	return rules, nil
}

// alternatingDiscount discounts every every-th unit (1-indexed) of a product
// group. Positional, not accumulating: the discount pattern is recomputed
// from scratch on every evaluation.
type alternatingDiscount struct {
	product string
	percent int
	every   int
}

func (r *alternatingDiscount) Name() string {
	return fmt.Sprintf("%s(%s)", TypeAlternatingDiscount, r.product)
}

func (r *alternatingDiscount) Matches(group []order.LineItem) bool {
	return group[0].Product.Name == r.product
}

func (r *alternatingDiscount) Apply(group []order.LineItem) ([]order.LineItem, error) {
	for i := range group {
		if (i+1)%r.every != 0 {
			continue
		}
		if err := group[i].SetDiscount(r.percent); err != nil {
			return nil, err
		}
	}
	return group, nil
}

// bonusUnit appends one fully discounted unit per every paid units of a
// product group. Bonus units go after all paid units, in the order the unit
// groups were completed, and are never rule inputs themselves.
type bonusUnit struct {
	product string
	every   int
}

func (r *bonusUnit) Name() string {
	return fmt.Sprintf("%s(%s)", TypeBonusUnit, r.product)
}

func (r *bonusUnit) Matches(group []order.LineItem) bool {
	return group[0].Product.Name == r.product
}

func (r *bonusUnit) Apply(group []order.LineItem) ([]order.LineItem, error) {
	bonuses := len(group) / r.every
	for i := 0; i < bonuses; i++ {
		bonus, err := order.NewLineItem(group[0].Product, 100)
		if err != nil {
			return nil, err
		}
		group = append(group, bonus)
	}
	return group, nil
}
