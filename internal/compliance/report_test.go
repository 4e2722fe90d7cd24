package compliance

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredResult(passed, failed []string) *Result {
	r := NewResult()
	for _, c := range passed {
		r.addPassed(c, "ok")
	}
	for _, c := range failed {
		r.addFailed(c, "bad")
	}
	r.CalculateScore()
	return r
}

func TestGenerateReportEmpty(t *testing.T) {
	report, err := GenerateReport(nil)
	require.ErrorIs(t, err, ErrNoResults)
	assert.Nil(t, report)
}

func TestGenerateReport(t *testing.T) {
	results := []*Result{
		scoredResult([]string{CheckRequiredColors, CheckTextLength}, nil),
		scoredResult([]string{CheckTextLength}, []string{CheckRequiredColors}),
		scoredResult(nil, []string{CheckRequiredColors, CheckImageQuality}),
	}

	report, err := GenerateReport(results)
	require.NoError(t, err)

	want := &Report{
		TotalAssets:        3,
		CompliantAssets:    1,
		NonCompliantAssets: 2,
		ComplianceRate:     100.0 / 3,
		AverageScore:       50,
		CommonFailures: []FailureCount{
			{Check: CheckRequiredColors, Count: 2},
			{Check: CheckImageQuality, Count: 1},
		},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateReportFailureOrdering(t *testing.T) {
	// Six distinct failures: counts decide the order, first occurrence
	// breaks ties, and the leaderboard is capped at five entries.
	results := []*Result{
		scoredResult(nil, []string{"b", "a"}),
		scoredResult(nil, []string{"b", "c", "d"}),
		scoredResult(nil, []string{"e", "f", "b"}),
	}

	report, err := GenerateReport(results)
	require.NoError(t, err)

	want := []FailureCount{
		{Check: "b", Count: 3},
		{Check: "a", Count: 1},
		{Check: "c", Count: 1},
		{Check: "d", Count: 1},
		{Check: "e", Count: 1},
	}
	assert.Equal(t, want, report.CommonFailures)
}

func TestGenerateReportAllCompliant(t *testing.T) {
	results := []*Result{
		scoredResult([]string{"a"}, nil),
		scoredResult([]string{"a", "b"}, nil),
	}

	report, err := GenerateReport(results)
	require.NoError(t, err)

	assert.Equal(t, 2, report.CompliantAssets)
	assert.Zero(t, report.NonCompliantAssets)
	assert.InDelta(t, 100.0, report.ComplianceRate, 0.001)
	assert.InDelta(t, 100.0, report.AverageScore, 0.001)
	assert.Empty(t, report.CommonFailures)
}
