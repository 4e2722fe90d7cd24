package compliance

import (
	"errors"
	"sort"
)

// ErrNoResults is returned when a report is requested over zero results.
var ErrNoResults = errors.New("compliance: no results to analyze")

// FailureCount is a failed check name with the number of assets it failed on.
type FailureCount struct {
	Check string `json:"check"`
	Count int    `json:"count"`
}

// Report summarizes compliance across a batch of assets.
type Report struct {
	TotalAssets        int            `json:"total_assets"`
	CompliantAssets    int            `json:"compliant_assets"`
	NonCompliantAssets int            `json:"non_compliant_assets"`
	ComplianceRate     float64        `json:"compliance_rate"`
	AverageScore       float64        `json:"average_score"`
	CommonFailures     []FailureCount `json:"common_failures"`
}

// maxCommonFailures caps the failure leaderboard.
const maxCommonFailures = 5

// GenerateReport aggregates many results: totals, compliance rate, mean
// score, and the most frequent failed checks. Ordering of the leaderboard is
// stable: descending count, ties broken by first occurrence across the
// results.
func GenerateReport(results []*Result) (*Report, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	report := &Report{TotalAssets: len(results)}

	counts := make(map[string]int)
	var firstSeen []string
	var scoreSum float64

	for _, r := range results {
		if r.IsCompliant {
			report.CompliantAssets++
		}
		scoreSum += r.Score
		for _, check := range r.FailedChecks {
			if counts[check] == 0 {
				firstSeen = append(firstSeen, check)
			}
			counts[check]++
		}
	}

	report.NonCompliantAssets = report.TotalAssets - report.CompliantAssets
	report.ComplianceRate = float64(report.CompliantAssets) / float64(report.TotalAssets) * 100
	report.AverageScore = scoreSum / float64(report.TotalAssets)

	sort.SliceStable(firstSeen, func(a, b int) bool {
		return counts[firstSeen[a]] > counts[firstSeen[b]]
	})
	if len(firstSeen) > maxCommonFailures {
		firstSeen = firstSeen[:maxCommonFailures]
	}
	for _, check := range firstSeen {
		report.CommonFailures = append(report.CommonFailures, FailureCount{Check: check, Count: counts[check]})
	}

	return report, nil
}
