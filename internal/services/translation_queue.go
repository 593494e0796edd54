package services

import (
	"context"
	"log"
	"time"

	"maistorBack/internal/models"
)

const defaultTranslationBuffer = 64

// TranslationJob is the unit of background work kicked off after a create or
// a content update. Stamp is the task's updated_at at enqueue time; stale
// results are discarded by the persistence guard.
type TranslationJob struct {
	TaskID       string
	Title        string
	Description  string
	Requirements *string
	SourceLocale string
	Stamp        time.Time
}

type translator interface {
	Translate(ctx context.Context, title, description string, requirements *string, sourceLocale string) (models.TaskTranslation, error)
}

type translationStore interface {
	SaveTranslations(ctx context.Context, taskID string, tr models.TaskTranslation, stamp time.Time) (bool, error)
}

// TranslationQueue decouples translation from the request lifecycle: Enqueue
// never blocks the caller, Run drains jobs until the context is cancelled.
// Failures are logged and dropped — no retry, nothing surfaces to the
// original caller.
type TranslationQueue struct {
	jobs       chan TranslationJob
	translator translator
	store      translationStore
	infoLog    *log.Logger
	errorLog   *log.Logger
	jobTimeout time.Duration
}

func NewTranslationQueue(tr translator, store translationStore, infoLog, errorLog *log.Logger) *TranslationQueue {
	return &TranslationQueue{
		jobs:       make(chan TranslationJob, defaultTranslationBuffer),
		translator: tr,
		store:      store,
		infoLog:    infoLog,
		errorLog:   errorLog,
		jobTimeout: 30 * time.Second,
	}
}

// Enqueue hands a job to the worker without blocking. Content already in the
// pivot language is skipped; a full buffer drops the job (logged), the
// response to the user is long gone either way.
func (q *TranslationQueue) Enqueue(job TranslationJob) {
	if job.SourceLocale == models.PivotLocale {
		return
	}
	select {
	case q.jobs <- job:
	default:
		q.errorLog.Printf("translation queue full, dropping job for task %s", job.TaskID)
	}
}

// Run processes jobs until ctx is cancelled. Started from main as a goroutine.
func (q *TranslationQueue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.process(ctx, job)
		}
	}
}

func (q *TranslationQueue) process(ctx context.Context, job TranslationJob) {
	jobCtx, cancel := context.WithTimeout(ctx, q.jobTimeout)
	defer cancel()

	tr, err := q.translator.Translate(jobCtx, job.Title, job.Description, job.Requirements, job.SourceLocale)
	if err != nil {
		q.errorLog.Printf("translation failed for task %s: %v", job.TaskID, err)
		return
	}
	if tr.Empty() {
		q.infoLog.Printf("translation returned nothing for task %s", job.TaskID)
		return
	}

	applied, err := q.store.SaveTranslations(jobCtx, job.TaskID, tr, job.Stamp)
	if err != nil {
		q.errorLog.Printf("failed to persist translation for task %s: %v", job.TaskID, err)
		return
	}
	if !applied {
		// Task content was edited after this job was enqueued; the newer
		// edit carries its own job with a fresh stamp.
		q.infoLog.Printf("discarded stale translation for task %s", job.TaskID)
	}
}
