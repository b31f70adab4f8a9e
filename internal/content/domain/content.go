// Package domain holds the content pipeline vocabulary.
package domain

// Compliance statuses stored on generated content.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusFlagged  = "flagged"
)

// Platforms the copywriter can target, in default generation order.
var DefaultPlatforms = []string{"instagram", "facebook", "whatsapp", "email", "seo"}

// Languages used when a request names none.
var DefaultLanguages = []string{"English", "Arabic", "Hindi", "Russian", "Mandarin", "French"}

// ComplianceStatus is the status a freshly generated item gets.
func ComplianceStatus(compliant bool) string {
	if compliant {
		return StatusApproved
	}
	return StatusFlagged
}

// Job is one (platform, language) rendering to produce.
type Job struct {
	Platform string
	Language string
}

// Jobs expands the cross product, falling back to defaults and dropping
// duplicates while keeping first-seen order.
func Jobs(platforms, languages []string) []Job {
	platforms = dedupe(platforms, DefaultPlatforms)
	languages = dedupe(languages, DefaultLanguages)

	jobs := make([]Job, 0, len(platforms)*len(languages))
	for _, p := range platforms {
		for _, l := range languages {
			jobs = append(jobs, Job{Platform: p, Language: l})
		}
	}
	return jobs
}

func dedupe(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
