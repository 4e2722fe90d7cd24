package compliance

// CheckStatus classifies a single check's outcome.
type CheckStatus string

const (
	StatusPassed  CheckStatus = "passed"
	StatusFailed  CheckStatus = "failed"
	StatusWarning CheckStatus = "warning"
)

// Detail carries the reason or description recorded for one check.
type Detail struct {
	Status  CheckStatus `json:"status"`
	Message string      `json:"message"`
}

// Result is the outcome of validating one asset. The checker appends check
// outcomes in a fixed order; CalculateScore freezes the result, after which
// it is read-only.
type Result struct {
	IsCompliant bool    `json:"is_compliant"`
	Score       float64 `json:"compliance_score"`

	PassedChecks []string `json:"passed_checks"`
	FailedChecks []string `json:"failed_checks"`
	Warnings     []string `json:"warnings"`

	Details map[string]Detail `json:"details"`

	frozen bool
}

// NewResult creates an empty, unfrozen result.
func NewResult() *Result {
	return &Result{Details: make(map[string]Detail)}
}

func (r *Result) addPassed(check, detail string) {
	if r.frozen {
		return
	}
	r.PassedChecks = append(r.PassedChecks, check)
	r.Details[check] = Detail{Status: StatusPassed, Message: detail}
}

func (r *Result) addFailed(check, reason string) {
	if r.frozen {
		return
	}
	r.FailedChecks = append(r.FailedChecks, check)
	r.Details[check] = Detail{Status: StatusFailed, Message: reason}
}

func (r *Result) addWarning(check, message string) {
	if r.frozen {
		return
	}
	r.Warnings = append(r.Warnings, message)
	r.Details[check] = Detail{Status: StatusWarning, Message: message}
}

// CalculateScore computes the final score and compliance flag, then freezes
// the result. The score is passed/(passed+failed)*100; with no checks at all
// it is 100 by definition. A result is compliant iff the score is at least
// 70 and nothing failed.
func (r *Result) CalculateScore() {
	if r.frozen {
		return
	}
	total := len(r.PassedChecks) + len(r.FailedChecks)
	if total == 0 {
		r.Score = 100.0
	} else {
		r.Score = float64(len(r.PassedChecks)) / float64(total) * 100.0
	}
	r.IsCompliant = r.Score >= 70.0 && len(r.FailedChecks) == 0
	r.frozen = true
}
