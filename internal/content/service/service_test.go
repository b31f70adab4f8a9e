package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"propboost_backend/internal/audit"
	"propboost_backend/internal/compliance"
	"propboost_backend/internal/content/domain"
	"propboost_backend/internal/content/repository"
	"propboost_backend/internal/content/transport"
	"propboost_backend/internal/judge"
	"propboost_backend/platform/apperr"
	"propboost_backend/platform/logger"
)

const (
	testActor        = "agent-1"
	unexpectedErrFmt = "unexpected error: %v"
	compliantCopy    = "Spacious two bedroom apartment in Dubai Marina. " + judge.MarkerGenerated
	riskyCopy        = "Guaranteed returns of 12% and totally risk-free. " + judge.MarkerGenerated
)

type fakeRepo struct {
	mu         sync.Mutex
	properties map[uuid.UUID]repository.Property
	contents   map[uuid.UUID]repository.Content
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		properties: map[uuid.UUID]repository.Property{},
		contents:   map[uuid.UUID]repository.Content{},
	}
}

func (r *fakeRepo) CreateProperty(_ context.Context, p repository.CreatePropertyParams) (repository.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	property := repository.Property{
		ID: uuid.New(), Title: p.Title, Location: p.Location, Bedrooms: p.Bedrooms, Bathrooms: p.Bathrooms,
		Price: p.Price, Currency: p.Currency, Amenities: p.Amenities, Description: p.Description,
		PropertyType: p.PropertyType, AreaSqft: p.AreaSqft, Images: p.Images, CreatedAt: time.Now(),
	}
	r.properties[property.ID] = property
	return property, nil
}

func (r *fakeRepo) GetProperty(_ context.Context, id uuid.UUID) (repository.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return repository.Property{}, repository.ErrPropertyNotFound
	}
	return p, nil
}

func (r *fakeRepo) ListProperties(_ context.Context, _ int) ([]repository.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]repository.Property, 0, len(r.properties))
	for _, p := range r.properties {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) DeleteProperty(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return repository.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

func (r *fakeRepo) CreateContent(_ context.Context, p repository.CreateContentParams) (repository.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := repository.Content{
		ID: uuid.New(), PropertyID: p.PropertyID, Platform: p.Platform, Language: p.Language,
		Content: p.Content, Hashtags: p.Hashtags, ComplianceStatus: p.ComplianceStatus,
		ComplianceFlags: p.ComplianceFlags, CreatedAt: time.Now(),
	}
	r.contents[c.ID] = c
	return c, nil
}

func (r *fakeRepo) GetContent(_ context.Context, id uuid.UUID) (repository.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return repository.Content{}, repository.ErrContentNotFound
	}
	return c, nil
}

func (r *fakeRepo) ListContent(_ context.Context, f repository.ContentFilter) ([]repository.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]repository.Content, 0)
	for _, c := range r.contents {
		if c.PropertyID != f.PropertyID {
			continue
		}
		if f.Platform != "" && c.Platform != f.Platform {
			continue
		}
		if f.Language != "" && c.Language != f.Language {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) SetApproval(_ context.Context, id uuid.UUID, approved bool) (repository.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contents[id]
	if !ok {
		return repository.Content{}, repository.ErrContentNotFound
	}
	if approved && c.ComplianceStatus == domain.StatusFlagged {
		return repository.Content{}, repository.ErrFlaggedApproval
	}
	c.Approved = approved
	r.contents[id] = c
	return c, nil
}

type fakeCopywriter struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	copyFor  func(platform, language string) string
}

func (f *fakeCopywriter) GenerateCopy(_ context.Context, _ judge.PropertySnapshot, platform, language string) judge.CopyResult {
	n := f.inFlight.Add(1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	f.inFlight.Add(-1)

	text := compliantCopy
	if f.copyFor != nil {
		text = f.copyFor(platform, language)
	}
	return judge.CopyResult{Content: text, Hashtags: "#dubai"}
}

type fakeRecorder struct {
	mu         sync.Mutex
	activities []audit.ActivityEntry
	compliance []audit.ComplianceEntry
}

func (f *fakeRecorder) Activity(_ context.Context, entry audit.ActivityEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.activities = append(f.activities, entry)
}

func (f *fakeRecorder) Compliance(_ context.Context, entry audit.ComplianceEntry) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.compliance = append(f.compliance, entry)
}

func (f *fakeRecorder) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.activities))
	for i, a := range f.activities {
		out[i] = a.Action
	}
	return out
}

type fixture struct {
	repo     *fakeRepo
	writer   *fakeCopywriter
	recorder *fakeRecorder
	svc      *Service
}

func newFixture(parallelism int) *fixture {
	f := &fixture{repo: newFakeRepo(), writer: &fakeCopywriter{}, recorder: &fakeRecorder{}}
	f.svc = New(f.repo, f.writer, f.recorder, parallelism, logger.New("development"), nil)
	return f
}

func (f *fixture) property(t *testing.T) transport.PropertyResponse {
	t.Helper()
	p, err := f.svc.CreateProperty(context.Background(), testActor, transport.CreatePropertyRequest{
		Title:    "Marina View",
		Location: "Dubai Marina",
		Bedrooms: 2,
		Price:    2_400_000,
	})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	return p
}

func TestCreatePropertyAppliesDefaults(t *testing.T) {
	f := newFixture(2)
	p := f.property(t)

	if p.Currency != "AED" || p.PropertyType != "Apartment" {
		t.Fatalf("expected AED/Apartment defaults, got %s/%s", p.Currency, p.PropertyType)
	}
	if got := f.recorder.actions(); len(got) != 1 || got[0] != actionPropertyCreated {
		t.Fatalf("unexpected activity: %v", got)
	}
}

func TestGenerateContentDefaultsAndBoundedFanOut(t *testing.T) {
	f := newFixture(3)
	p := f.property(t)

	resp, err := f.svc.GenerateContent(context.Background(), testActor, transport.GenerateContentRequest{PropertyID: p.ID})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}

	want := len(domain.DefaultPlatforms) * len(domain.DefaultLanguages)
	if resp.Count != want || len(resp.Contents) != want {
		t.Fatalf("expected %d items, got %d", want, resp.Count)
	}
	if peak := f.writer.peak.Load(); peak > 3 {
		t.Fatalf("expected at most 3 concurrent judge calls, saw %d", peak)
	}
	if len(f.recorder.compliance) != want {
		t.Fatalf("expected %d compliance audits, got %d", want, len(f.recorder.compliance))
	}
	if resp.Contents[0].Platform != "instagram" || resp.Contents[0].Language != "English" {
		t.Fatalf("expected results in job order, got %+v", resp.Contents[0])
	}
}

func TestGenerateContentFlagsRiskyCopy(t *testing.T) {
	f := newFixture(2)
	f.writer.copyFor = func(platform, _ string) string {
		if platform == "seo" {
			return riskyCopy
		}
		return compliantCopy
	}
	p := f.property(t)

	resp, err := f.svc.GenerateContent(context.Background(), testActor, transport.GenerateContentRequest{
		PropertyID: p.ID,
		Platforms:  []string{"instagram", "seo"},
		Languages:  []string{"English"},
	})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}

	seo := resp.Contents[1]
	if seo.ComplianceStatus != domain.StatusFlagged || len(seo.ComplianceFlags) == 0 {
		t.Fatalf("expected flagged seo copy, got %+v", seo)
	}
	if resp.Contents[0].ComplianceStatus != domain.StatusApproved {
		t.Fatalf("expected compliant instagram copy, got %s", resp.Contents[0].ComplianceStatus)
	}

	last := f.recorder.activities[len(f.recorder.activities)-1]
	if last.Action != actionContentGenerated || last.Details["flagged"] != 1 || last.Details["count"] != 2 {
		t.Fatalf("unexpected generation activity: %+v", last)
	}
}

func TestGenerateContentUnknownProperty(t *testing.T) {
	f := newFixture(2)
	_, err := f.svc.GenerateContent(context.Background(), testActor, transport.GenerateContentRequest{PropertyID: uuid.New()})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApproveFlaggedContentIsRejected(t *testing.T) {
	f := newFixture(1)
	f.writer.copyFor = func(string, string) string { return riskyCopy }
	p := f.property(t)

	resp, err := f.svc.GenerateContent(context.Background(), testActor, transport.GenerateContentRequest{
		PropertyID: p.ID, Platforms: []string{"facebook"}, Languages: []string{"English"},
	})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	id := resp.Contents[0].ID

	_, err = f.svc.ApproveContent(context.Background(), testActor, id, true)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || !strings.Contains(appErr.Message, "compliance") {
		t.Fatalf("unexpected error: %v", err)
	}
	details, _ := appErr.Details.(gin.H)
	violations, _ := details["violations"].([]string)
	if len(violations) == 0 || violations[0] != compliance.LabelReturnGuarantee {
		t.Fatalf("expected violation details, got %+v", appErr.Details)
	}

	rejected, err := f.svc.ApproveContent(context.Background(), testActor, id, false)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if rejected.Approved {
		t.Fatal("expected content to stay unapproved")
	}
	got := f.recorder.actions()
	if got[len(got)-1] != actionContentRejected {
		t.Fatalf("expected %s, got %v", actionContentRejected, got)
	}
}

func TestApproveCompliantContent(t *testing.T) {
	f := newFixture(1)
	p := f.property(t)
	resp, err := f.svc.GenerateContent(context.Background(), testActor, transport.GenerateContentRequest{
		PropertyID: p.ID, Platforms: []string{"email"}, Languages: []string{"Arabic"},
	})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}

	approved, err := f.svc.ApproveContent(context.Background(), testActor, resp.Contents[0].ID, true)
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if !approved.Approved {
		t.Fatal("expected content approved")
	}
}

func TestApproveMissingContent(t *testing.T) {
	f := newFixture(1)
	_, err := f.svc.ApproveContent(context.Background(), testActor, uuid.New(), true)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPropertyContentFilters(t *testing.T) {
	f := newFixture(2)
	p := f.property(t)
	if _, err := f.svc.GenerateContent(context.Background(), testActor, transport.GenerateContentRequest{
		PropertyID: p.ID, Platforms: []string{"instagram", "seo"}, Languages: []string{"English", "French"},
	}); err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}

	items, err := f.svc.ListPropertyContent(context.Background(), p.ID, transport.ListContentRequest{Platform: "seo"})
	if err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 seo items, got %d", len(items))
	}
}

func TestDeleteProperty(t *testing.T) {
	f := newFixture(1)
	p := f.property(t)

	if err := f.svc.DeleteProperty(context.Background(), testActor, p.ID); err != nil {
		t.Fatalf(unexpectedErrFmt, err)
	}
	if err := f.svc.DeleteProperty(context.Background(), testActor, p.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
