package domain

import "testing"

func TestJobsDefaults(t *testing.T) {
	jobs := Jobs(nil, nil)
	if len(jobs) != len(DefaultPlatforms)*len(DefaultLanguages) {
		t.Fatalf("expected %d jobs, got %d", len(DefaultPlatforms)*len(DefaultLanguages), len(jobs))
	}
	if jobs[0] != (Job{Platform: "instagram", Language: "English"}) {
		t.Fatalf("unexpected first job: %+v", jobs[0])
	}
}

func TestJobsDropsDuplicates(t *testing.T) {
	jobs := Jobs([]string{"seo", "seo", ""}, []string{"French"})
	if len(jobs) != 1 || jobs[0].Platform != "seo" || jobs[0].Language != "French" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestComplianceStatus(t *testing.T) {
	if ComplianceStatus(true) != StatusApproved || ComplianceStatus(false) != StatusFlagged {
		t.Fatal("unexpected compliance status mapping")
	}
}
