// Package compliance screens marketing and messaging text for regulated claims.
package compliance

import (
	"regexp"
	"strings"
)

// Violation labels surfaced to reviewers and stored on audited entities.
const (
	LabelReturnGuarantee      = "Investment return guarantee"
	LabelAppreciationPromise  = "Price appreciation promise"
	LabelRiskFree             = "Risk-free claim"
	LabelUnsubstantiatedClaim = "Unsubstantiated superlative"
	LabelAbsoluteSafety       = "Absolute safety claim"
	LabelMissingDisclaimer    = "Missing AI disclaimer"
)

type rule struct {
	label    string
	patterns []*regexp.Regexp
}

// rules is matched against lowercased text in order; every matching label is reported once.
var rules = []rule{
	{
		label: LabelReturnGuarantee,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`guarantee[sd]?\b.{0,40}\b(roi|returns?|yields?|income|profits?)\b`),
			regexp.MustCompile(`\b(roi|returns?|yields?)\b.{0,20}\bguarantee[sd]?\b`),
		},
	},
	{
		label: LabelAppreciationPromise,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(price|prices|value|property)\b.{0,20}\bwill\s+(double|triple|increase|rise|appreciate)`),
			regexp.MustCompile(`guaranteed\s+(appreciation|capital\s+growth)`),
		},
	},
	{
		label: LabelRiskFree,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\brisk[\s-]?free\b`),
			regexp.MustCompile(`\b(no|zero)\s+risks?\b`),
		},
	},
	{
		label: LabelUnsubstantiatedClaim,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bbest\s+(investment|deal|opportunity)\b`),
			regexp.MustCompile(`#1\b|\bnumber\s+one\b`),
			regexp.MustCompile(`\bunbeatable\b`),
		},
	},
	{
		label: LabelAbsoluteSafety,
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`100%\s+safe`),
			regexp.MustCompile(`\b(completely|totally|absolutely)\s+safe\b`),
			regexp.MustCompile(`\bsafest\s+investment\b`),
		},
	},
}

var disclaimerMarkers = []string{"[ai-generated", "[ai-assisted", "ai-generated content"}

// Result is the outcome of a single validator run.
type Result struct {
	Compliant         bool
	Violations        []string
	DisclaimerPresent bool
}

// Validate scans text for regulated claims and the AI disclaimer marker.
func Validate(text string) Result {
	lowered := strings.ToLower(text)

	violations := make([]string, 0)
	for _, r := range rules {
		for _, pattern := range r.patterns {
			if pattern.MatchString(lowered) {
				violations = append(violations, r.label)
				break
			}
		}
	}

	disclaimer := HasDisclaimer(lowered)
	if !disclaimer {
		violations = append(violations, LabelMissingDisclaimer)
	}

	return Result{
		Compliant:         len(violations) == 0,
		Violations:        violations,
		DisclaimerPresent: disclaimer,
	}
}

// HasDisclaimer reports whether text carries an AI disclaimer marker.
func HasDisclaimer(text string) bool {
	lowered := strings.ToLower(text)
	for _, marker := range disclaimerMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
