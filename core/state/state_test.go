package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"content-planner-api/core/domain"
	"content-planner-api/core/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(statuses ...domain.Status) []domain.ContentItem {
	out := make([]domain.ContentItem, len(statuses))
	for i, st := range statuses {
		out[i] = domain.ContentItem{
			ID:       string(rune('a' + i)),
			Title:    "Item " + string(rune('A'+i)),
			Platform: domain.PlatformYouTube,
			Status:   st,
		}
	}
	return out
}

// serverStore is a mockStore backed by a mutable list, like the real service
func serverStore(initial []domain.ContentItem) (*mockStore, *[]domain.ContentItem, *sync.Mutex) {
	var mu sync.Mutex
	rows := append([]domain.ContentItem(nil), initial...)
	m := &mockStore{
		fetchAllFunc: func(ctx context.Context) ([]domain.ContentItem, error) {
			mu.Lock()
			defer mu.Unlock()
			return append([]domain.ContentItem(nil), rows...), nil
		},
		updateFunc: func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
			mu.Lock()
			defer mu.Unlock()
			for i := range rows {
				if rows[i].ID == patch.ID {
					rows[i] = patch.Apply(rows[i])
					return rows[i], nil
				}
			}
			return domain.ContentItem{}, errors.New("404")
		},
		deleteOneFunc: func(ctx context.Context, id string) error {
			mu.Lock()
			defer mu.Unlock()
			out := rows[:0]
			for _, r := range rows {
				if r.ID != id {
					out = append(out, r)
				}
			}
			rows = out
			return nil
		},
	}
	return m, &rows, &mu
}

func TestRefresh_ReplacesItemsWholesale(t *testing.T) {
	store, rows, _ := serverStore(items(domain.StatusIdea, domain.StatusEditing))
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s := New(store, nil, WithClock(func() time.Time { return fixed }))

	require.NoError(t, s.Refresh(context.Background()))
	snap := s.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.False(t, snap.Loading)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Equal(t, fixed, snap.RefreshedAt)

	*rows = (*rows)[:1]
	require.NoError(t, s.Refresh(context.Background()))
	assert.Len(t, s.Snapshot().Items, 1)
}

func TestRefresh_FailureKeepsPreviousItems(t *testing.T) {
	fail := false
	store := &mockStore{fetchAllFunc: func(ctx context.Context) ([]domain.ContentItem, error) {
		if fail {
			return nil, errors.New("offline")
		}
		return items(domain.StatusIdea), nil
	}}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	fail = true
	err := s.Refresh(context.Background())
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Len(t, snap.Items, 1)
	assert.False(t, snap.Loading)
	assert.EqualError(t, snap.LastError, "offline")

	fail = false
	require.NoError(t, s.Refresh(context.Background()))
	assert.NoError(t, s.Snapshot().LastError)
}

func TestRefresh_LoadingVisibleWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	store := &mockStore{fetchAllFunc: func(ctx context.Context) ([]domain.ContentItem, error) {
		<-release
		return nil, nil
	}}
	s := New(store, nil)

	var sawLoading atomic.Bool
	s.Subscribe(func(snap Snapshot) {
		if snap.Loading {
			sawLoading.Store(true)
		}
	})

	done := make(chan error)
	go func() { done <- s.Refresh(context.Background()) }()

	require.Eventually(t, sawLoading.Load, time.Second, time.Millisecond)
	assert.True(t, s.Snapshot().Loading)
	close(release)
	require.NoError(t, <-done)
	assert.False(t, s.Snapshot().Loading)
}

func TestRefresh_StaleResultIsDiscarded(t *testing.T) {
	first := make(chan struct{})
	var calls atomic.Int32
	store := &mockStore{fetchAllFunc: func(ctx context.Context) ([]domain.ContentItem, error) {
		if calls.Add(1) == 1 {
			<-first
			return items(domain.StatusIdea, domain.StatusIdea, domain.StatusIdea), nil
		}
		return items(domain.StatusPublished), nil
	}}
	s := New(store, nil)

	done := make(chan error)
	go func() { done <- s.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	// The second refresh starts later and finishes first
	require.NoError(t, s.Refresh(context.Background()))
	close(first)
	require.NoError(t, <-done)

	snap := s.Snapshot()
	require.Len(t, snap.Items, 1, "older refresh must not overwrite newer data")
	assert.Equal(t, domain.StatusPublished, snap.Items[0].Status)
	assert.Equal(t, uint64(2), snap.Generation)
	assert.False(t, snap.Loading)
}

func TestRefresh_StaleFailureIsNotReported(t *testing.T) {
	first := make(chan struct{})
	var calls atomic.Int32
	store := &mockStore{fetchAllFunc: func(ctx context.Context) ([]domain.ContentItem, error) {
		if calls.Add(1) == 1 {
			<-first
			return nil, errors.New("timeout")
		}
		return items(domain.StatusIdea), nil
	}}
	s := New(store, nil)

	done := make(chan error)
	go func() { done <- s.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, s.Refresh(context.Background()))
	close(first)

	assert.NoError(t, <-done, "an overtaken refresh has nothing to report")
	snap := s.Snapshot()
	assert.NoError(t, snap.LastError)
	assert.Len(t, snap.Items, 1)
	assert.Equal(t, uint64(2), snap.Generation)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	s := New(&mockStore{}, nil)
	var n atomic.Int32
	unsubscribe := s.Subscribe(func(Snapshot) { n.Add(1) })

	require.NoError(t, s.Refresh(context.Background()))
	seen := n.Load()
	assert.GreaterOrEqual(t, seen, int32(2), "start and finish of a refresh notify")

	unsubscribe()
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, seen, n.Load())
}

func TestSnapshot_IsACopy(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea))
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	snap := s.Snapshot()
	snap.Items[0].Title = "mutated by a view"
	assert.Equal(t, "Item A", s.Snapshot().Items[0].Title)
}

func TestSave_CreateSendsIdempotencyKeyAndRefreshes(t *testing.T) {
	store, rows, mu := serverStore(nil)
	var gotKey string
	store.createFunc = func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
		gotKey = interfaces.HeadersFromContext(ctx)[interfaces.IdempotencyKeyHeader]
		item := patch.Apply(domain.ContentItem{ID: "new"}).WithDefaults()
		mu.Lock()
		*rows = append(*rows, item)
		mu.Unlock()
		return item, nil
	}
	s := New(store, nil, WithKeyGenerator(func() string { return "generated" }))

	created, err := s.Save(context.Background(), domain.ContentPatch{Title: domain.Ptr("Fresh")})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Equal(t, "generated", gotKey)
	assert.Len(t, s.Snapshot().Items, 1, "create is followed by a refresh")

	_, err = s.SaveWithKey(context.Background(), domain.ContentPatch{Title: domain.Ptr("Again")}, "form-key")
	require.NoError(t, err)
	assert.Equal(t, "form-key", gotKey)
}

func TestSave_CreateFailureLeavesStateUnchanged(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea))
	store.createFunc = func(context.Context, domain.ContentPatch) (domain.ContentItem, error) {
		return domain.ContentItem{}, errors.New("500")
	}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))
	before := s.Snapshot()

	_, err := s.Save(context.Background(), domain.ContentPatch{Title: domain.Ptr("x")})
	require.Error(t, err)
	assert.Equal(t, before.Items, s.Snapshot().Items)
	assert.Equal(t, before.Generation, s.Snapshot().Generation)
}

func TestSave_ConcurrentSaveIsBusy(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	store := &mockStore{createFunc: func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
		close(entered)
		<-release
		return domain.ContentItem{ID: "x"}, nil
	}}
	s := New(store, nil)

	done := make(chan error)
	go func() {
		_, err := s.Save(context.Background(), domain.ContentPatch{Title: domain.Ptr("one")})
		done <- err
	}()
	<-entered

	_, err := s.Save(context.Background(), domain.ContentPatch{Title: domain.Ptr("two")})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	// The guard is released afterwards
	store.createFunc = nil
	_, err = s.Save(context.Background(), domain.ContentPatch{Title: domain.Ptr("three")})
	assert.NoError(t, err)
}

func TestSave_UpdateGoesThroughMutate(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea))
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	updated, err := s.Save(context.Background(), domain.ContentPatch{ID: "a", Title: domain.Ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	got, ok := s.Snapshot().Find("a")
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Title)
}

func TestMutate_OptimisticThenReconciled(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea, domain.StatusEditing))
	inUpdate := make(chan struct{})
	release := make(chan struct{})
	serverUpdate := store.updateFunc
	store.updateFunc = func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
		close(inUpdate)
		<-release
		return serverUpdate(ctx, patch)
	}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	done := make(chan error)
	go func() {
		_, err := s.Mutate(context.Background(), domain.StatusPatch("a", domain.StatusPublished))
		done <- err
	}()
	<-inUpdate

	got, _ := s.Snapshot().Find("a")
	assert.Equal(t, domain.StatusPublished, got.Status, "patch visible before the store confirms")

	close(release)
	require.NoError(t, <-done)

	got, _ = s.Snapshot().Find("a")
	assert.Equal(t, domain.StatusPublished, got.Status)
	assert.Equal(t, uint64(2), s.Snapshot().Generation, "success triggers a refresh")
}

func TestMutate_RollsBackOnFailure(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea))
	store.updateFunc = func(context.Context, domain.ContentPatch) (domain.ContentItem, error) {
		return domain.ContentItem{}, errors.New("503")
	}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	var statuses []domain.Status
	s.Subscribe(func(snap Snapshot) {
		if it, ok := snap.Find("a"); ok {
			statuses = append(statuses, it.Status)
		}
	})

	_, err := s.Mutate(context.Background(), domain.StatusPatch("a", domain.StatusScheduled))
	require.Error(t, err)

	got, _ := s.Snapshot().Find("a")
	assert.Equal(t, domain.StatusIdea, got.Status)
	assert.Equal(t, []domain.Status{domain.StatusScheduled, domain.StatusIdea}, statuses)
}

func TestMutate_SurvivesRefreshLandingMidFlight(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea))
	inUpdate := make(chan struct{})
	release := make(chan struct{})
	serverUpdate := store.updateFunc
	store.updateFunc = func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
		close(inUpdate)
		<-release
		return serverUpdate(ctx, patch)
	}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	done := make(chan error)
	go func() {
		_, err := s.Mutate(context.Background(), domain.StatusPatch("a", domain.StatusRecording))
		done <- err
	}()
	<-inUpdate

	// A refresh carrying the old server row lands while the update is pending
	require.NoError(t, s.Refresh(context.Background()))
	got, _ := s.Snapshot().Find("a")
	assert.Equal(t, domain.StatusRecording, got.Status)

	close(release)
	require.NoError(t, <-done)
}

func TestMutate_RollbackKeepsNewerRefresh(t *testing.T) {
	store, rows, mu := serverStore(items(domain.StatusIdea))
	inUpdate := make(chan struct{})
	release := make(chan struct{})
	store.updateFunc = func(ctx context.Context, patch domain.ContentPatch) (domain.ContentItem, error) {
		close(inUpdate)
		<-release
		return domain.ContentItem{}, errors.New("conflict")
	}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	done := make(chan error)
	go func() {
		_, err := s.Mutate(context.Background(), domain.StatusPatch("a", domain.StatusRecording))
		done <- err
	}()
	<-inUpdate

	// Someone else renamed the item; a refresh brings it in
	mu.Lock()
	(*rows)[0].Title = "Renamed elsewhere"
	mu.Unlock()
	require.NoError(t, s.Refresh(context.Background()))

	close(release)
	require.Error(t, <-done)

	got, _ := s.Snapshot().Find("a")
	assert.Equal(t, "Renamed elsewhere", got.Title, "rollback must not restore pre-refresh data")
	assert.Equal(t, domain.StatusIdea, got.Status)
}

func TestMutate_RequiresID(t *testing.T) {
	s := New(&mockStore{}, nil)
	_, err := s.Mutate(context.Background(), domain.ContentPatch{Title: domain.Ptr("x")})
	assert.Error(t, err)
}

func TestDelete_OptimisticAndRollback(t *testing.T) {
	store, _, _ := serverStore(items(domain.StatusIdea, domain.StatusIdea))
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "a"))
	_, ok := s.Snapshot().Find("a")
	assert.False(t, ok)

	store.deleteOneFunc = func(context.Context, string) error { return errors.New("offline") }
	require.Error(t, s.Delete(context.Background(), "b"))
	_, ok = s.Snapshot().Find("b")
	assert.True(t, ok, "failed delete restores the item")
}

func TestDeleteAll(t *testing.T) {
	store, rows, mu := serverStore(items(domain.StatusIdea, domain.StatusEditing))
	store.deleteAllFunc = func(context.Context) error {
		mu.Lock()
		*rows = nil
		mu.Unlock()
		return nil
	}
	s := New(store, nil)
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.DeleteAll(context.Background()))
	assert.Empty(t, s.Snapshot().Items)

	store.deleteAllFunc = func(context.Context) error { return errors.New("forbidden") }
	assert.Error(t, s.DeleteAll(context.Background()))
}
