package mock

import (
	"context"

	"github.com/henfal/mdubot"
)

var _ mdubot.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of mdubot.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context) error
}

func (p *Pacer) Wait(ctx context.Context) error {
	if p.WaitFn == nil {
		return nil
	}
	return p.WaitFn(ctx)
}

var _ mdubot.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of mdubot.SnapshotStore.
type SnapshotStore struct {
	SaveFn   func(ctx context.Context, page *mdubot.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *SnapshotStore) Save(ctx context.Context, page *mdubot.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *SnapshotStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *SnapshotStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}
