package app

import (
	"context"
	"fmt"

	"github.com/agroaide/agroaide-client/internal/services"
	"github.com/agroaide/agroaide-client/internal/session"
)

// SetOfflineMode stores the offline flag. Enabling it starts a sync and
// returns its result; disabling it clears the last sync time and makes any
// sync still in flight discard its result.
func (a *App) SetOfflineMode(ctx context.Context, enabled bool) (*services.SyncResult, error) {
	if !enabled {
		a.offlineEpoch.Add(1)
		a.store.SetOfflineMode(false)
		a.store.SetLastSync("")
		return nil, nil
	}
	a.store.SetOfflineMode(true)
	return a.Sync(ctx)
}

// Sync fetches the offline brief and records when it was produced.
// Concurrent calls share one request while offline mode stays on; a call
// made after offline mode was toggled starts its own.
func (a *App) Sync(ctx context.Context) (*services.SyncResult, error) {
	token, err := a.token()
	if err != nil {
		return nil, err
	}

	epoch := a.offlineEpoch.Load()
	ch := a.syncs.DoChan(fmt.Sprintf("sync:%d", epoch), func() (any, error) {
		res, err := a.api.System.SyncOffline(context.WithoutCancel(ctx), token)
		if err != nil {
			return nil, err
		}
		if a.offlineEpoch.Load() != epoch {
			a.logger.Info("Offline mode disabled during sync, discarding result")
			return res, nil
		}
		syncedAt := res.SyncedAt
		if syncedAt == "" {
			syncedAt = session.ISOTimestamp(a.now())
		}
		a.store.SetLastSync(syncedAt)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, a.Guard(r.Err)
		}
		return r.Val.(*services.SyncResult), nil
	}
}
