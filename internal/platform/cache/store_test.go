package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	ctx := context.Background()
	if err := s.Set(ctx, "stats:lg:season:2024", "payload"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := s.Get(ctx, "stats:lg:season:2024")
	if !ok || got != "payload" {
		t.Fatalf("Get() = %v, %t; want payload, true", got, ok)
	}

	if _, ok := s.Get(ctx, "stats:lg:season:1999"); ok {
		t.Fatal("Get() on missing key reported a hit")
	}
}

func TestStoreRejectsEmptyKey(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	if err := s.Set(context.Background(), "", "payload"); err == nil {
		t.Fatal("Set() with empty key succeeded, want error")
	}
}

func TestStoreTTLExpiry(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	ctx := context.Background()
	if err := s.SetWithTTL(ctx, "k", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL() error = %v", err)
	}

	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatal("entry expired immediately")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("entry survived past its TTL")
	}
}

func TestStoreNonPositiveTTLNeverExpires(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	ctx := context.Background()
	if err := s.SetWithTTL(ctx, "k", "v", 0); err != nil {
		t.Fatalf("SetWithTTL() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := s.Get(ctx, "k"); !ok {
		t.Fatal("zero-TTL entry expired")
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	ctx := context.Background()
	_ = s.Set(ctx, "stats:lg:season:2023", 1)
	_ = s.Set(ctx, "stats:lg:season:2024", 2)
	_ = s.Set(ctx, "h2h:lg", 3)

	s.DeletePrefix(ctx, "stats:lg:")

	if _, ok := s.Get(ctx, "stats:lg:season:2023"); ok {
		t.Error("prefixed entry survived DeletePrefix")
	}
	if _, ok := s.Get(ctx, "h2h:lg"); !ok {
		t.Error("unrelated entry was deleted")
	}
}

func TestStoreGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	var loads atomic.Int32
	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(10 * time.Millisecond)
		return "loaded", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := s.GetOrLoad(context.Background(), "k", loader)
			if err != nil || got != "loaded" {
				t.Errorf("GetOrLoad() = %v, %v", got, err)
			}
		}()
	}
	wg.Wait()

	if loads.Load() != 1 {
		t.Fatalf("loader ran %d times, want 1", loads.Load())
	}
}

func TestStoreGetOrLoadPropagatesLoaderError(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	defer s.Close()

	loadErr := errors.New("origin unavailable")
	if _, err := s.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		return nil, loadErr
	}); !errors.Is(err, loadErr) {
		t.Fatalf("err = %v, want loader error", err)
	}
}

func TestStoreCloseIsIdempotentAndRejectsWrites(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Fatalf("Set after close: err = %v, want ErrClosed", err)
	}
	if _, ok := s.Get(context.Background(), "k"); ok {
		t.Fatal("Get after close reported a hit")
	}
}
