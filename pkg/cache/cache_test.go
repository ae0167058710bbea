package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNullCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if data, hit, err := c.Get(ctx, "key"); hit || data != nil || err != nil {
		t.Errorf("Get = %q, %v, %v; want nil, false, nil", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete: %v", err)
	}
}

func TestHash(t *testing.T) {
	if Hash([]byte("ring")) != Hash([]byte("ring")) {
		t.Error("Hash is not deterministic")
	}
	if Hash([]byte("ring")) == Hash([]byte("notch")) {
		t.Error("distinct inputs collide")
	}
	if n := len(Hash(nil)); n != 64 {
		t.Errorf("len(Hash) = %d, want 64", n)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := GraphKeyOpts{ChannelRule: "first", Reduce: true, Smooth: true, MaxDist: 5, Thickness: 1}

	graphVariants := map[string]GraphKeyOpts{
		"thickness": {ChannelRule: "first", Reduce: true, Smooth: true, MaxDist: 5, Thickness: 2},
		"max dist":  {ChannelRule: "first", Reduce: true, Smooth: true, MaxDist: 3, Thickness: 1},
		"channel":   {ChannelRule: "any", Reduce: true, Smooth: true, MaxDist: 5, Thickness: 1},
		"invert":    {ChannelRule: "first", Invert: true, Reduce: true, Smooth: true, MaxDist: 5, Thickness: 1},
		"no reduce": {ChannelRule: "first", Smooth: true, MaxDist: 5, Thickness: 1},
	}
	key := k.GraphKey("raster", base)
	if !strings.HasPrefix(key, "graph:") {
		t.Errorf("GraphKey = %s, want graph: prefix", key)
	}
	if key != k.GraphKey("raster", base) {
		t.Error("GraphKey is not deterministic")
	}
	if key == k.GraphKey("other", base) {
		t.Error("raster hash is not part of the key")
	}
	for name, opts := range graphVariants {
		if k.GraphKey("raster", opts) == key {
			t.Errorf("%s does not change the graph key", name)
		}
	}

	ak := k.ArtifactKey("graph", ArtifactKeyOpts{Format: "nmesh", Volumes: true})
	if !strings.HasPrefix(ak, "artifact:") {
		t.Errorf("ArtifactKey = %s, want artifact: prefix", ak)
	}
	for _, opts := range []ArtifactKeyOpts{
		{Format: "nmesh"},
		{Format: "neutral", Volumes: true},
		{Format: "nmesh", Volumes: true, Detail: true},
	} {
		if k.ArtifactKey("graph", opts) == ak {
			t.Errorf("%+v does not change the artifact key", opts)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "site-a:")

	if got, want := scoped.GraphKey("abc", GraphKeyOpts{}), "site-a:"+inner.GraphKey("abc", GraphKeyOpts{}); got != want {
		t.Errorf("GraphKey = %s, want %s", got, want)
	}
	if got := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "stl"}); !strings.HasPrefix(got, "site-a:artifact:") {
		t.Errorf("ArtifactKey = %s, want site-a:artifact: prefix", got)
	}
	if got := NewScopedKeyer(nil, "p:").GraphKey("abc", GraphKeyOpts{}); got != "p:"+inner.GraphKey("abc", GraphKeyOpts{}) {
		t.Errorf("nil inner keyer = %s, want default keys", got)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("Retryable(ErrNetwork) = %v, want retryable ErrNetwork", err)
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("message = %q, want %q", err.Error(), ErrNetwork.Error())
	}
	if IsRetryable(ErrNetwork) {
		t.Error("unwrapped errors are not retryable")
	}
}

func TestBackoffRetry(t *testing.T) {
	fast := Backoff{Attempts: 3, Initial: time.Millisecond}
	permanent := errors.New("WRONGTYPE")

	tests := []struct {
		name      string
		failures  int   // retryable failures before success
		final     error // returned once failures run out
		wantCalls int
		wantErr   error
	}{
		{"succeeds at once", 0, nil, 1, nil},
		{"recovers", 2, nil, 3, nil},
		{"gives up", 5, nil, 3, ErrNetwork},
		{"permanent error", 0, permanent, 1, permanent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fast.Retry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return Retryable(ErrNetwork)
				}
				return tt.final
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBackoffRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Backoff{Attempts: 5, Initial: time.Hour}.Retry(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
