// ABOUTME: Subscription tier gating for profile, log, export and AI actions
// ABOUTME: The external billing SDK lives behind the Entitlements interface
package billing

import "fmt"

// Tier is a subscription level
type Tier string

const (
	TierFree    Tier = "free"
	TierPro     Tier = "pro"
	TierPremium Tier = "premium"
)

// Action is a gated operation
type Action string

const (
	ActionAddProfile Action = "add_profile"
	ActionAddLog     Action = "add_log"
	ActionExport     Action = "export"
	ActionInsights   Action = "insights"
)

// Unlimited marks a limit with no cap
const Unlimited = -1

// Limits describes what a tier allows
type Limits struct {
	MaxProfiles int
	MaxLogs     int
	Export      bool
	Insights    bool
}

// Decision is the answer to a gating question. When not allowed, Reason
// is the user-facing upgrade prompt, surfaced verbatim.
type Decision struct {
	Allowed bool
	Reason  string
}

// Entitlements is the billing collaborator. The core calls CanPerform
// before any gated mutation and never second-guesses the answer.
type Entitlements interface {
	CurrentTier() (Tier, error)
	TierLimits() (Limits, error)
	CanPerform(action Action, currentCount int) (Decision, error)
}

// limitsByTier mirrors the plans offered by the billing service
var limitsByTier = map[Tier]Limits{
	TierFree:    {MaxProfiles: 3, MaxLogs: 50, Export: false, Insights: false},
	TierPro:     {MaxProfiles: Unlimited, MaxLogs: Unlimited, Export: true, Insights: false},
	TierPremium: {MaxProfiles: Unlimited, MaxLogs: Unlimited, Export: true, Insights: true},
}

// LimitsForTier returns the limits for a tier, defaulting unknown tiers
// to free
func LimitsForTier(tier Tier) Limits {
	if limits, ok := limitsByTier[tier]; ok {
		return limits
	}
	return limitsByTier[TierFree]
}

// StaticEntitlements is a local, offline Entitlements implementation
// driven by configuration. It stands in for the external billing SDK
// and doubles as the test fake.
type StaticEntitlements struct {
	tier Tier
}

// NewStaticEntitlements creates entitlements pinned to the given tier
func NewStaticEntitlements(tier Tier) *StaticEntitlements {
	if _, ok := limitsByTier[tier]; !ok {
		tier = TierFree
	}
	return &StaticEntitlements{tier: tier}
}

// CurrentTier returns the configured tier
func (e *StaticEntitlements) CurrentTier() (Tier, error) {
	return e.tier, nil
}

// TierLimits returns the configured tier's limits
func (e *StaticEntitlements) TierLimits() (Limits, error) {
	return LimitsForTier(e.tier), nil
}

// CanPerform decides whether an action is allowed given the caller's
// current count of the relevant resource
func (e *StaticEntitlements) CanPerform(action Action, currentCount int) (Decision, error) {
	limits := LimitsForTier(e.tier)

	switch action {
	case ActionAddProfile:
		if limits.MaxProfiles != Unlimited && currentCount >= limits.MaxProfiles {
			return Decision{
				Reason: fmt.Sprintf("profile limit reached (%d on the %s plan); upgrade for unlimited profiles", limits.MaxProfiles, e.tier),
			}, nil
		}
	case ActionAddLog:
		if limits.MaxLogs != Unlimited && currentCount >= limits.MaxLogs {
			return Decision{
				Reason: fmt.Sprintf("flag limit reached (%d on the %s plan); upgrade for unlimited flags", limits.MaxLogs, e.tier),
			}, nil
		}
	case ActionExport:
		if !limits.Export {
			return Decision{
				Reason: fmt.Sprintf("export is not included in the %s plan; upgrade to pro or premium", e.tier),
			}, nil
		}
	case ActionInsights:
		if !limits.Insights {
			return Decision{
				Reason: fmt.Sprintf("AI insights are not included in the %s plan; upgrade to premium", e.tier),
			}, nil
		}
	default:
		return Decision{}, fmt.Errorf("unknown action %q", action)
	}

	return Decision{Allowed: true}, nil
}
