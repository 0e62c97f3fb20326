package workers

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"achievement-review-system/storage"
)

// ReferenceChecker is the one repository question the reaper asks: is this
// blob key still referenced by a live achievement?
type ReferenceChecker interface {
	ExistsByCertificateKey(ctx context.Context, key string) (bool, error)
}

// CertificateReaper periodically deletes certificate blobs no achievement
// references anymore. Record mutations never block on blob cleanup, so a
// failed delete or a crash between blob store and record commit can strand
// objects; this sweeps them up.
type CertificateReaper struct {
	store    ReferenceChecker
	blobs    storage.BlobStore
	interval time.Duration
	minAge   time.Duration

	scheduler gocron.Scheduler
}

func NewCertificateReaper(store ReferenceChecker, blobs storage.BlobStore, interval, minAge time.Duration) *CertificateReaper {
	return &CertificateReaper{
		store:    store,
		blobs:    blobs,
		interval: interval,
		minAge:   minAge,
	}
}

// Start schedules the sweep. Returns immediately; sweeps run in the
// scheduler's goroutine until Stop.
func (r *CertificateReaper) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	r.scheduler = sched

	_, err = sched.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			r.Sweep(context.Background())
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	return nil
}

func (r *CertificateReaper) Stop() {
	if r.scheduler != nil {
		_ = r.scheduler.Shutdown()
	}
}

// Sweep deletes orphaned blobs older than the minimum age. The age floor
// keeps it from racing a submit whose record commit is still in flight.
func (r *CertificateReaper) Sweep(ctx context.Context) {
	blobs, err := r.blobs.List(ctx)
	if err != nil {
		log.Printf("[Reaper] Failed to list blobs: %v", err)
		return
	}

	cutoff := time.Now().Add(-r.minAge)
	var reaped, skipped int
	for _, blob := range blobs {
		if blob.LastModified.After(cutoff) {
			skipped++
			continue
		}

		referenced, err := r.store.ExistsByCertificateKey(ctx, blob.Key)
		if err != nil {
			log.Printf("[Reaper] DB error checking %s: %v", blob.Key, err)
			return
		}
		if referenced {
			continue
		}

		if err := r.blobs.Delete(ctx, blob.Key); err != nil {
			log.Printf("[Reaper] Failed to delete orphan %s: %v", blob.Key, err)
			continue
		}
		reaped++
	}

	if reaped > 0 {
		log.Printf("✅ [Reaper] Deleted %d orphaned certificate(s), %d too recent to judge", reaped, skipped)
	}
}
