// ABOUTME: Pure toxicity scoring and health classification over log entries
// ABOUTME: No I/O; deterministic arithmetic over already-validated data
package scoring

import (
	"math"

	"github.com/flagbook/flagbook/internal/models"
)

// HealthStatus is the qualitative label derived from a toxicity score
type HealthStatus string

const (
	HealthThriving   HealthStatus = "Thriving"
	HealthStable     HealthStatus = "Stable"
	HealthConcerning HealthStatus = "Concerning"
	HealthToxic      HealthStatus = "Toxic"
	HealthCritical   HealthStatus = "Critical"
)

// ComputeToxicityScore computes a 0-100 toxicity percentage over a log
// history. RED entries contribute their severity, YELLOW entries half of
// it, GREEN entries subtract theirs. The signed sum is normalized against
// the maximum possible contribution (count * 10), clamped to [0, 100],
// and rounded to the nearest integer.
func ComputeToxicityScore(logs []models.LogEntry) int {
	if len(logs) == 0 {
		return 0
	}

	var sum float64
	for _, entry := range logs {
		switch entry.Type {
		case models.FlagRed:
			sum += float64(entry.Severity)
		case models.FlagYellow:
			sum += float64(entry.Severity) / 2
		case models.FlagGreen:
			sum -= float64(entry.Severity)
		}
	}

	pct := sum / float64(len(logs)*models.MaxSeverity) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return int(math.Round(pct))
}

// ClassifyHealth maps a toxicity score to a health label. The thresholds
// are exact: 75 is Toxic, 76 is Critical, 0 is Thriving, 1 is Stable.
func ClassifyHealth(score int) HealthStatus {
	switch {
	case score > 75:
		return HealthCritical
	case score >= 50:
		return HealthToxic
	case score >= 25:
		return HealthConcerning
	case score > 0:
		return HealthStable
	default:
		return HealthThriving
	}
}
