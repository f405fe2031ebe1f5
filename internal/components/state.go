package components

import "strings"

// Variant is the severity of an Alert or Callout.
type Variant string

const (
	VariantInfo    Variant = "info"
	VariantSuccess Variant = "success"
	VariantWarning Variant = "warning"
	VariantError   Variant = "error"
)

// Variants lists the accepted variants in display order.
var Variants = []Variant{VariantInfo, VariantSuccess, VariantWarning, VariantError}

// ParseVariant maps raw to a Variant. Blank input is VariantInfo.
func ParseVariant(raw string) (Variant, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return VariantInfo, true
	}
	for _, variant := range Variants {
		if string(variant) == raw {
			return variant, true
		}
	}
	return "", false
}

// Role is the ARIA role used when rendering the variant.
func (v Variant) Role() string {
	switch v {
	case VariantWarning, VariantError:
		return "alert"
	default:
		return "note"
	}
}

// CounterState is the value behind a Counter component.
type CounterState struct {
	Value   int
	Initial int
	Step    int
}

// NewCounterState starts a counter at initial. A zero step becomes 1.
func NewCounterState(initial, step int) CounterState {
	if step == 0 {
		step = 1
	}
	return CounterState{Value: initial, Initial: initial, Step: step}
}

func (c CounterState) Increment() CounterState {
	c.Value += c.Step
	return c
}

func (c CounterState) Decrement() CounterState {
	c.Value -= c.Step
	return c
}

func (c CounterState) Reset() CounterState {
	c.Value = c.Initial
	return c
}

// CollapsibleState is the expanded flag behind a Collapsible component.
type CollapsibleState struct {
	Open bool
}

// Toggle flips the expanded flag.
func (c CollapsibleState) Toggle() CollapsibleState {
	c.Open = !c.Open
	return c
}
