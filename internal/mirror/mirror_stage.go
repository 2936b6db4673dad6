package mirror

import (
	"context"

	"github.com/saebasol/sunflower/internal/clock"
	"github.com/saebasol/sunflower/internal/diffset"
	"github.com/saebasol/sunflower/internal/info"
)

// PerformMirroring executes one mirror iteration:
//
//  1. remote \ relational galleryinfo ids are fetched from upstream
//     (identity-preprocessed) and created in the relational store.
//  2. relational \ document galleryinfo ids are derived into Info and
//     created in the document store; last_mirrored_at only advances when
//     this set was non-empty.
//  3. An integrity check runs over the ids from step 2 (not step 1 — see
//     DESIGN.md's Open Question on this narrowing), regardless of whether
//     that set was empty.
func (e *Engine) PerformMirroring(ctx context.Context) error {
	remoteDiff, err := diffset.Differences(ctx, e.remote.AllIDs, e.relational.AllIDs)
	if err != nil {
		return err
	}

	e.status.SetMirroringGalleryinfo(true)
	err = e.processInJobs(ctx, remoteDiff, e.fetchAndStoreGalleryinfo, true)
	e.status.SetMirroringGalleryinfo(false)
	if err != nil {
		return err
	}

	localDiff, err := diffset.Differences(ctx, e.relational.AllIDs, e.document.AllIDs)
	if err != nil {
		return err
	}

	if len(localDiff) > 0 {
		e.status.SetConvertingToInfo(true)
		err = e.processInJobs(ctx, localDiff, e.fetchAndStoreInfo, false)
		e.status.SetConvertingToInfo(false)
		if err != nil {
			return err
		}
		e.status.SetLastMirroredAt(clock.Now())
	}

	e.status.SetCheckingIntegrity(true)
	err = e.processInJobs(ctx, localDiff, e.integrityCheck, false)
	e.status.SetCheckingIntegrity(false)
	return err
}

func (e *Engine) fetchAndStoreGalleryinfo(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		g, err := preprocess(ctx, e.remote.Get, id)
		if err != nil {
			return err
		}
		if err := e.relational.Add(ctx, g); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) fetchAndStoreInfo(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		g, err := e.relational.Get(ctx, id)
		if err != nil {
			return err
		}
		i := info.FromGalleryinfo(g)
		if err := e.document.Add(ctx, i); err != nil {
			return err
		}
	}
	return nil
}
