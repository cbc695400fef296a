package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// testStoreConformance runs the behaviour every Store backend must share.
// advance moves the backend's notion of time forward; when nil the
// expiry cases are skipped.
func testStoreConformance(t *testing.T, s Store, advance func(time.Duration)) {
	t.Helper()
	ctx := context.Background()

	t.Run("write_read_exists_delete", func(t *testing.T) {
		key := "conf:basic"
		if err := s.WriteFields(ctx, key, map[string]string{"a": "1", "b": "2"}); err != nil {
			t.Fatalf("WriteFields: %v", err)
		}
		ok, err := s.Exists(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Exists = %v, %v; want true", ok, err)
		}
		v, found, err := s.ReadField(ctx, key, "b")
		if err != nil || !found || v != "2" {
			t.Fatalf("ReadField(b) = %q, %v, %v", v, found, err)
		}
		if _, found, _ := s.ReadField(ctx, key, "missing"); found {
			t.Fatal("ReadField(missing) found a value")
		}
		deleted, err := s.Delete(ctx, key)
		if err != nil || !deleted {
			t.Fatalf("Delete = %v, %v; want true", deleted, err)
		}
		deleted, err = s.Delete(ctx, key)
		if err != nil || deleted {
			t.Fatalf("second Delete = %v, %v; want false", deleted, err)
		}
		if ok, _ := s.Exists(ctx, key); ok {
			t.Fatal("key still exists after delete")
		}
	})

	t.Run("write_merges_fields", func(t *testing.T) {
		key := "conf:merge"
		_ = s.WriteFields(ctx, key, map[string]string{"a": "1"})
		_ = s.WriteFields(ctx, key, map[string]string{"b": "2"})
		for field, want := range map[string]string{"a": "1", "b": "2"} {
			if v, _, _ := s.ReadField(ctx, key, field); v != want {
				t.Fatalf("ReadField(%s) = %q; want %q", field, v, want)
			}
		}
		_, _ = s.Delete(ctx, key)
	})

	t.Run("set_ttl_missing_key", func(t *testing.T) {
		err := s.SetTTL(ctx, "conf:nope", time.Minute)
		if !errors.Is(err, ErrNoSuchKey) {
			t.Fatalf("SetTTL(missing) = %v; want ErrNoSuchKey", err)
		}
	})

	if rd, ok := s.(ReadAndDeleter); ok {
		t.Run("read_and_delete", func(t *testing.T) {
			key := "conf:rad"
			_ = s.WriteFields(ctx, key, map[string]string{"x": "y"})
			fields, found, err := rd.ReadAndDelete(ctx, key)
			if err != nil || !found || fields["x"] != "y" {
				t.Fatalf("ReadAndDelete = %v, %v, %v", fields, found, err)
			}
			if _, found, _ := rd.ReadAndDelete(ctx, key); found {
				t.Fatal("second ReadAndDelete found the record")
			}
		})

		t.Run("read_and_delete_single_winner", func(t *testing.T) {
			key := "conf:race"
			_ = s.WriteFields(ctx, key, map[string]string{"x": "y"})
			var (
				wg   sync.WaitGroup
				wins atomic.Int32
			)
			for i := 0; i < 16; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, found, err := rd.ReadAndDelete(ctx, key); err == nil && found {
						wins.Add(1)
					}
				}()
			}
			wg.Wait()
			if got := wins.Load(); got != 1 {
				t.Fatalf("winners = %d; want 1", got)
			}
		})
	}

	if c, ok := s.(Creator); ok {
		t.Run("create_if_absent", func(t *testing.T) {
			key := "conf:create"
			created, err := c.CreateWithTTL(ctx, key, map[string]string{"v": "1"}, time.Minute)
			if err != nil || !created {
				t.Fatalf("CreateWithTTL = %v, %v; want true", created, err)
			}
			created, err = c.CreateWithTTL(ctx, key, map[string]string{"v": "2"}, time.Minute)
			if err != nil || created {
				t.Fatalf("second CreateWithTTL = %v, %v; want false", created, err)
			}
			if v, _, _ := s.ReadField(ctx, key, "v"); v != "1" {
				t.Fatalf("value overwritten: %q", v)
			}
			_, _ = s.Delete(ctx, key)
		})
	}

	if advance == nil {
		return
	}

	t.Run("ttl_expiry", func(t *testing.T) {
		key := "conf:ttl"
		_ = s.WriteFields(ctx, key, map[string]string{"a": "1"})
		if err := s.SetTTL(ctx, key, 2*time.Second); err != nil {
			t.Fatalf("SetTTL: %v", err)
		}
		advance(time.Second)
		if ok, _ := s.Exists(ctx, key); !ok {
			t.Fatal("key expired early")
		}
		advance(2 * time.Second)
		if ok, _ := s.Exists(ctx, key); ok {
			t.Fatal("key survived its deadline")
		}
		if _, found, _ := s.ReadField(ctx, key, "a"); found {
			t.Fatal("expired key still readable")
		}
		if deleted, _ := s.Delete(ctx, key); deleted {
			t.Fatal("Delete reported removing an expired key")
		}
	})

	if c, ok := s.(Creator); ok {
		t.Run("create_over_expired", func(t *testing.T) {
			key := "conf:recreate"
			if _, err := c.CreateWithTTL(ctx, key, map[string]string{"v": "old"}, time.Second); err != nil {
				t.Fatal(err)
			}
			advance(2 * time.Second)
			created, err := c.CreateWithTTL(ctx, key, map[string]string{"v": "new"}, time.Minute)
			if err != nil || !created {
				t.Fatalf("CreateWithTTL over expired = %v, %v; want true", created, err)
			}
			if v, _, _ := s.ReadField(ctx, key, "v"); v != "new" {
				t.Fatalf("value = %q; want new", v)
			}
			_, _ = s.Delete(ctx, key)
		})
	}
}

