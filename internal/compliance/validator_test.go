package compliance

import (
	"testing"
)

const (
	disclaimer        = "\n\n[AI-Generated Content]"
	expectedLabelMsg  = "expected %q in violations, got %v"
	unexpectedViolMsg = "expected no violations, got %v"
)

func contains(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

func TestValidateDetectsEachRegulatedClaim(t *testing.T) {
	cases := map[string]string{
		"Enjoy GUARANTEED ROI of 12% every year":       LabelReturnGuarantee,
		"Returns are guaranteed by the developer":      LabelReturnGuarantee,
		"The property value will double in five years": LabelAppreciationPromise,
		"A completely risk-free purchase":              LabelRiskFree,
		"There is zero risk involved":                  LabelRiskFree,
		"The best investment in Dubai Marina":          LabelUnsubstantiatedClaim,
		"Dubai's #1 tower":                             LabelUnsubstantiatedClaim,
		"Your money is 100% safe here":                 LabelAbsoluteSafety,
		"The safest investment you can make":           LabelAbsoluteSafety,
	}

	for text, label := range cases {
		result := Validate(text + disclaimer)
		if result.Compliant {
			t.Fatalf("expected %q to be non-compliant", text)
		}
		if !contains(result.Violations, label) {
			t.Fatalf(expectedLabelMsg, label, result.Violations)
		}
		if contains(result.Violations, LabelMissingDisclaimer) {
			t.Fatalf("did not expect disclaimer violation for %q", text)
		}
	}
}

func TestValidateCollectsAllMatchesInTableOrder(t *testing.T) {
	result := Validate("Guaranteed returns and totally safe. Risk-free!")

	want := []string{LabelReturnGuarantee, LabelRiskFree, LabelAbsoluteSafety, LabelMissingDisclaimer}
	if len(result.Violations) != len(want) {
		t.Fatalf("expected %v, got %v", want, result.Violations)
	}
	for i := range want {
		if result.Violations[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, result.Violations)
		}
	}
}

func TestValidateCompliantText(t *testing.T) {
	result := Validate("Spacious 2BR apartment in Downtown Dubai with Burj views." + disclaimer)
	if !result.Compliant || len(result.Violations) != 0 {
		t.Fatalf(unexpectedViolMsg, result.Violations)
	}
	if !result.DisclaimerPresent {
		t.Fatal("expected disclaimer to be detected")
	}
}

func TestValidateMissingDisclaimerIsViolation(t *testing.T) {
	result := Validate("Spacious 2BR apartment in Downtown Dubai.")
	if result.Compliant {
		t.Fatal("expected missing disclaimer to fail compliance")
	}
	if !contains(result.Violations, LabelMissingDisclaimer) {
		t.Fatalf(expectedLabelMsg, LabelMissingDisclaimer, result.Violations)
	}
}

func TestDisclaimerMarkersAreCaseInsensitive(t *testing.T) {
	for _, text := range []string{
		"Hello [ai-assisted content]",
		"Hello [AI-GENERATED]",
		"This is AI-Generated Content for review",
	} {
		if !HasDisclaimer(text) {
			t.Fatalf("expected disclaimer in %q", text)
		}
	}
}

func TestPlaceholderTextIsFlagged(t *testing.T) {
	result := Validate("[Error generating content: context deadline exceeded]")
	if result.Compliant {
		t.Fatal("placeholder output must not pass compliance")
	}
}
