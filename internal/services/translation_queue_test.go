package services

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"maistorBack/internal/models"
)

type fakeTranslator struct {
	result models.TaskTranslation
	err    error
	calls  int
}

func (f *fakeTranslator) Translate(ctx context.Context, title, description string, requirements *string, sourceLocale string) (models.TaskTranslation, error) {
	f.calls++
	return f.result, f.err
}

type fakeTranslationStore struct {
	mu      sync.Mutex
	applied bool
	saves   []time.Time
	done    chan struct{}
}

func (f *fakeTranslationStore) SaveTranslations(ctx context.Context, taskID string, tr models.TaskTranslation, stamp time.Time) (bool, error) {
	f.mu.Lock()
	f.saves = append(f.saves, stamp)
	f.mu.Unlock()
	if f.done != nil {
		close(f.done)
	}
	return f.applied, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func strPtr(s string) *string { return &s }

func TestTranslationQueueSkipsPivotLocale(t *testing.T) {
	q := NewTranslationQueue(&fakeTranslator{}, &fakeTranslationStore{}, discardLogger(), discardLogger())

	q.Enqueue(TranslationJob{TaskID: "t1", SourceLocale: models.PivotLocale})
	if len(q.jobs) != 0 {
		t.Errorf("pivot-locale job was buffered, want skipped")
	}

	q.Enqueue(TranslationJob{TaskID: "t2", SourceLocale: "en"})
	if len(q.jobs) != 1 {
		t.Errorf("foreign-locale job not buffered")
	}
}

func TestTranslationQueueDropsWhenFull(t *testing.T) {
	q := NewTranslationQueue(&fakeTranslator{}, &fakeTranslationStore{}, discardLogger(), discardLogger())

	for i := 0; i < defaultTranslationBuffer+10; i++ {
		q.Enqueue(TranslationJob{TaskID: "t", SourceLocale: "en"})
	}
	if len(q.jobs) != defaultTranslationBuffer {
		t.Errorf("buffer holds %d jobs, want capped at %d", len(q.jobs), defaultTranslationBuffer)
	}
}

func TestTranslationQueuePersistsResult(t *testing.T) {
	tr := &fakeTranslator{result: models.TaskTranslation{Title: strPtr("Поправка на мивка")}}
	store := &fakeTranslationStore{applied: true, done: make(chan struct{})}
	q := NewTranslationQueue(tr, store, discardLogger(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	stamp := time.Now()
	q.Enqueue(TranslationJob{TaskID: "t1", Title: "Fix the sink", SourceLocale: "en", Stamp: stamp})

	select {
	case <-store.done:
	case <-time.After(2 * time.Second):
		t.Fatal("translation was never persisted")
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.saves) != 1 || !store.saves[0].Equal(stamp) {
		t.Errorf("saves = %v, want single save with the enqueue stamp", store.saves)
	}
}

func TestTranslationQueueEmptyResultNotPersisted(t *testing.T) {
	tr := &fakeTranslator{result: models.TaskTranslation{}}
	store := &fakeTranslationStore{}
	q := NewTranslationQueue(tr, store, discardLogger(), discardLogger())

	q.process(context.Background(), TranslationJob{TaskID: "t1", SourceLocale: "en"})

	if len(store.saves) != 0 {
		t.Errorf("empty translation was persisted")
	}
}

func TestTranslationQueueStaleStampDiscarded(t *testing.T) {
	// The store reports the guard did not match: the task was edited after
	// this job was enqueued. Nothing to do but log; the newer edit enqueued
	// its own job.
	tr := &fakeTranslator{result: models.TaskTranslation{Title: strPtr("Поправка")}}
	store := &fakeTranslationStore{applied: false}
	q := NewTranslationQueue(tr, store, discardLogger(), discardLogger())

	q.process(context.Background(), TranslationJob{TaskID: "t1", SourceLocale: "en", Stamp: time.Now().Add(-time.Hour)})

	if len(store.saves) != 1 {
		t.Fatalf("save attempts = %d, want 1", len(store.saves))
	}
}

func TestTranslationQueueTranslatorErrorSkipsStore(t *testing.T) {
	tr := &fakeTranslator{err: context.DeadlineExceeded}
	store := &fakeTranslationStore{}
	q := NewTranslationQueue(tr, store, discardLogger(), discardLogger())

	q.process(context.Background(), TranslationJob{TaskID: "t1", SourceLocale: "en"})

	if len(store.saves) != 0 {
		t.Errorf("failed translation reached the store")
	}
}
