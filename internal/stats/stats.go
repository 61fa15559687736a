// ABOUTME: Profile aggregation composing the storage layer with the scoring engine
// ABOUTME: No independent state; absence propagates as nil, not as an error
package stats

import (
	"time"

	"github.com/flagbook/flagbook/internal/models"
	"github.com/flagbook/flagbook/internal/scoring"
	"github.com/flagbook/flagbook/internal/storage"
	"github.com/flagbook/flagbook/internal/storage/sqlite"
)

// ProfileStats summarizes one profile's log history
type ProfileStats struct {
	Profile     models.Profile       `json:"profile"`
	Score       int                  `json:"toxicity_score"`
	Health      scoring.HealthStatus `json:"health"`
	GreenCount  int                  `json:"green_count"`
	YellowCount int                  `json:"yellow_count"`
	RedCount    int                  `json:"red_count"`
	LastLogAt   *time.Time           `json:"last_log_at,omitempty"`
}

// OverallStats summarizes the whole journal
type OverallStats struct {
	Score        int                  `json:"toxicity_score"`
	Health       scoring.HealthStatus `json:"health"`
	GreenCount   int                  `json:"green_count"`
	YellowCount  int                  `json:"yellow_count"`
	RedCount     int                  `json:"red_count"`
	LogCount     int                  `json:"log_count"`
	ProfileCount int                  `json:"profile_count"`
}

// ComputeProfileStats derives a profile's stats, returning nil if the
// profile does not exist.
func ComputeProfileStats(store *storage.Storage, profileID string) (*ProfileStats, error) {
	profile, err := store.GetProfile(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}

	logs, err := store.ListLogsForProfile(profileID)
	if err != nil {
		return nil, err
	}

	return buildProfileStats(*profile, logs), nil
}

// ComputeAllProfileStats derives stats for every profile, in the same
// order as ListProfiles.
func ComputeAllProfileStats(store *storage.Storage) ([]ProfileStats, error) {
	profiles, err := store.ListProfiles()
	if err != nil {
		return nil, err
	}

	var all []ProfileStats
	for _, profile := range profiles {
		logs, err := store.ListLogsForProfile(profile.ProfileID)
		if err != nil {
			return nil, err
		}
		all = append(all, *buildProfileStats(profile, logs))
	}
	return all, nil
}

// ComputeOverallStats derives the journal-wide score and tallies
func ComputeOverallStats(store *storage.Storage) (*OverallStats, error) {
	logs, err := store.ListLogs()
	if err != nil {
		return nil, err
	}
	profileCount, err := store.CountProfiles()
	if err != nil {
		return nil, err
	}

	score := scoring.ComputeToxicityScore(logs)
	overall := &OverallStats{
		Score:        score,
		Health:       scoring.ClassifyHealth(score),
		LogCount:     len(logs),
		ProfileCount: profileCount,
	}
	for _, entry := range logs {
		switch entry.Type {
		case models.FlagGreen:
			overall.GreenCount++
		case models.FlagYellow:
			overall.YellowCount++
		case models.FlagRed:
			overall.RedCount++
		}
	}
	return overall, nil
}

// TopProfilesByLogCount returns up to limit profiles by linked-flag
// count, descending, ties broken by profile id. Profiles with zero
// logs are excluded.
func TopProfilesByLogCount(store *storage.Storage, limit int) ([]sqlite.ProfileLogCount, error) {
	counts, err := store.CountLogsByProfile()
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts, nil
}

func buildProfileStats(profile models.Profile, logs []models.LogEntry) *ProfileStats {
	score := scoring.ComputeToxicityScore(logs)
	st := &ProfileStats{
		Profile: profile,
		Score:   score,
		Health:  scoring.ClassifyHealth(score),
	}

	for _, entry := range logs {
		switch entry.Type {
		case models.FlagGreen:
			st.GreenCount++
		case models.FlagYellow:
			st.YellowCount++
		case models.FlagRed:
			st.RedCount++
		}
		if st.LastLogAt == nil || entry.Timestamp.After(*st.LastLogAt) {
			ts := entry.Timestamp
			st.LastLogAt = &ts
		}
	}
	return st
}
