package redis

import (
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newMiniredis starts an in-process Redis and a client bound to it. Both are
// torn down when t finishes.
func newMiniredis(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

// requireStored reads the raw key from the server, bypassing any prefixing.
func requireStored(t *testing.T, mr *miniredis.Miniredis, key, want string) {
	t.Helper()

	got, err := mr.Get(key)
	if err != nil {
		t.Fatalf("expected %s to be stored: %v", key, err)
	}
	if got != want {
		t.Fatalf("expected %s to hold %q, got %q", key, want, got)
	}
}
