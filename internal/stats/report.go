// ABOUTME: Shareable report built from already-computed stats and logs
// ABOUTME: Supports YAML, JSON, and Markdown output formats
package stats

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flagbook/flagbook/internal/storage"
)

// Report is the complete exportable document. It carries validated,
// already-computed data; presentation (PDF rendering etc.) is the
// consumer's concern.
type Report struct {
	Version    string          `yaml:"version" json:"version"`
	ExportedAt string          `yaml:"exported_at" json:"exported_at"`
	Tool       string          `yaml:"tool" json:"tool"`
	Overall    *OverallStats   `yaml:"overall" json:"overall"`
	Profiles   []ReportProfile `yaml:"profiles,omitempty" json:"profiles,omitempty"`
}

// ReportProfile is one profile's section of the report
type ReportProfile struct {
	ProfileID    string      `yaml:"profile_id" json:"profile_id"`
	Name         string      `yaml:"name" json:"name"`
	Relationship string      `yaml:"relationship" json:"relationship"`
	Score        int         `yaml:"toxicity_score" json:"toxicity_score"`
	Health       string      `yaml:"health" json:"health"`
	Flags        []ReportLog `yaml:"flags,omitempty" json:"flags,omitempty"`
}

// ReportLog is one log entry in a report
type ReportLog struct {
	LogID     string `yaml:"log_id" json:"log_id"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`
	Type      string `yaml:"type" json:"type"`
	Severity  int    `yaml:"severity" json:"severity"`
	Category  string `yaml:"category" json:"category"`
	Notes     string `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// BuildReport assembles the full journal report
func BuildReport(store *storage.Storage) (*Report, error) {
	overall, err := ComputeOverallStats(store)
	if err != nil {
		return nil, fmt.Errorf("failed to compute overall stats: %w", err)
	}

	report := &Report{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "flagbook",
		Overall:    overall,
	}

	allStats, err := ComputeAllProfileStats(store)
	if err != nil {
		return nil, fmt.Errorf("failed to compute profile stats: %w", err)
	}

	for _, st := range allStats {
		rp := ReportProfile{
			ProfileID:    st.Profile.ProfileID,
			Name:         st.Profile.Name,
			Relationship: st.Profile.Relationship,
			Score:        st.Score,
			Health:       string(st.Health),
		}

		logs, err := store.ListLogsForProfile(st.Profile.ProfileID)
		if err != nil {
			return nil, fmt.Errorf("failed to list logs for %s: %w", st.Profile.Name, err)
		}
		for _, entry := range logs {
			rp.Flags = append(rp.Flags, ReportLog{
				LogID:     entry.LogID,
				Timestamp: entry.Timestamp.Format(time.RFC3339),
				Type:      string(entry.Type),
				Severity:  entry.Severity,
				Category:  entry.Category,
				Notes:     entry.Notes,
			})
		}

		report.Profiles = append(report.Profiles, rp)
	}

	return report, nil
}

// ToYAML serializes the report as YAML
func (r *Report) ToYAML() ([]byte, error) {
	return yaml.Marshal(r)
}

// ToJSON serializes the report as indented JSON
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ToMarkdown renders the report as a human-readable document
func (r *Report) ToMarkdown() []byte {
	var b strings.Builder

	b.WriteString("# Flagbook Report\n\n")
	b.WriteString(fmt.Sprintf("Exported: %s\n\n", r.ExportedAt))

	if r.Overall != nil {
		b.WriteString("## Overall\n\n")
		b.WriteString(fmt.Sprintf("- Toxicity score: %d/100 (%s)\n", r.Overall.Score, r.Overall.Health))
		b.WriteString(fmt.Sprintf("- Flags: %d green, %d yellow, %d red\n", r.Overall.GreenCount, r.Overall.YellowCount, r.Overall.RedCount))
		b.WriteString(fmt.Sprintf("- People tracked: %d\n\n", r.Overall.ProfileCount))
	}

	for _, p := range r.Profiles {
		b.WriteString(fmt.Sprintf("## %s (%s)\n\n", p.Name, p.Relationship))
		b.WriteString(fmt.Sprintf("Toxicity score: %d/100 (%s)\n\n", p.Score, p.Health))

		if len(p.Flags) > 0 {
			b.WriteString("| Date | Type | Severity | Category | Notes |\n")
			b.WriteString("|------|------|----------|----------|-------|\n")
			for _, f := range p.Flags {
				b.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s |\n",
					f.Timestamp, f.Type, f.Severity, f.Category, f.Notes))
			}
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}
