// Package promo implements the promotion rule engine: a small, deterministic
// evaluator that rewrites an order's expanded line items according to an
// ordered list of rules.
//
// The engine is a pure function over one order's working set. Rules are
// evaluated per product group, in group order, and each rule fires at most
// once per group, so a single pass is already a fixpoint: items inserted by
// a rule (bonus units) are never themselves rule inputs. There is no shared
// engine state between orders or between calls.
package promo

import (
	"github.com/go-faster/errors"

	"github.com/Averus89/shopapp/internal/domain/order"
)

// Rule matches a product group and rewrites it. Apply receives the group's
// line items in expansion order and returns the rewritten group; it may
// mutate discounts and append bonus items, but must preserve the relative
// order of the paid units.
type Rule interface {
	Name() string
	Matches(group []order.LineItem) bool
	Apply(group []order.LineItem) ([]order.LineItem, error)
}

// Engine evaluates an ordered list of rules over product groups.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine with the given rules. Rule order is the
// evaluation order within each group.
func NewEngine(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Run evaluates every rule against every product group once and returns the
// concatenated result, preserving group order. Groups no rule matches pass
// through unchanged.
func (e *Engine) Run(groups [][]order.LineItem) ([]order.LineItem, error) {
	var items []order.LineItem
	for _, group := range groups {
		cur := group
		for _, rule := range e.rules {
			if len(cur) == 0 || !rule.Matches(cur) {
				continue
			}
			var err error
			cur, err = rule.Apply(cur)
			if err != nil {
				return nil, errors.Wrapf(err, "rule %s", rule.Name())
			}
		}
		items = append(items, cur...)
	}
	return items, nil
}
