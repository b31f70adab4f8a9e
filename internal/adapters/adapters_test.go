package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	leadsrepo "propboost_backend/internal/leads/repository"
	"propboost_backend/internal/messaging/ports"
	"propboost_backend/platform/logger"
)

type fakeLeadReader struct {
	lead leadsrepo.Lead
	err  error
}

func (f fakeLeadReader) GetByID(context.Context, uuid.UUID) (leadsrepo.Lead, error) {
	return f.lead, f.err
}

func (f fakeLeadReader) List(context.Context, leadsrepo.ListParams) ([]leadsrepo.Lead, error) {
	return nil, nil
}

func TestLeadContactReaderMapsLead(t *testing.T) {
	id := uuid.New()
	reader := NewLeadContactReader(fakeLeadReader{lead: leadsrepo.Lead{
		ID: id, Name: "Omar", Phone: "+971501112233", Email: "omar@example.test", LanguagePreference: "Arabic",
	}})

	contact, err := reader.GetLeadContact(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contact.ID != id || contact.Phone != "+971501112233" || contact.LanguagePreference != "Arabic" {
		t.Fatalf("unexpected contact: %+v", contact)
	}
}

func TestLeadContactReaderNotFound(t *testing.T) {
	reader := NewLeadContactReader(fakeLeadReader{err: leadsrepo.ErrNotFound})
	if _, err := reader.GetLeadContact(context.Background(), uuid.New()); !errors.Is(err, ports.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}

type fakeScheduler struct {
	calls int
	err   error
}

func (f *fakeScheduler) ScheduleVoiceCall(context.Context, uuid.UUID, string) error {
	f.calls++
	return f.err
}

func TestVoiceCallSchedulerPrefersQueue(t *testing.T) {
	queue, local := &fakeScheduler{}, &fakeScheduler{}
	s := NewVoiceCallScheduler(queue, local, logger.New("development"))

	if err := s.ScheduleVoiceCall(context.Background(), uuid.New(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if queue.calls != 1 || local.calls != 0 {
		t.Fatalf("expected queue only, got queue=%d local=%d", queue.calls, local.calls)
	}
}

func TestVoiceCallSchedulerFallsBackToLocal(t *testing.T) {
	queue, local := &fakeScheduler{err: errors.New("redis unavailable")}, &fakeScheduler{}
	s := NewVoiceCallScheduler(queue, local, logger.New("development"))

	if err := s.ScheduleVoiceCall(context.Background(), uuid.New(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if local.calls != 1 {
		t.Fatalf("expected local fallback, got %d", local.calls)
	}
}

func TestVoiceCallSchedulerWithoutQueue(t *testing.T) {
	local := &fakeScheduler{}
	s := NewVoiceCallScheduler(nil, local, logger.New("development"))
	_ = s.ScheduleVoiceCall(context.Background(), uuid.New(), "")
	if local.calls != 1 {
		t.Fatalf("expected local execution, got %d", local.calls)
	}
}
