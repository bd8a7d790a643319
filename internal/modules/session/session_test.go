package session

import (
	"testing"
	"time"
)

func TestIsValidShapeCheck(t *testing.T) {
	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"no token", "", false},
		{"not a jwt", "not-a-jwt", false},
		{"three segments", "aaa.bbb.ccc", true},
		{"empty signature", "aaa.bbb.", true},
		{"two segments", "aaa.bbb", false},
		{"illegal characters", "aa a.bbb.ccc", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore(NewMemoryStorage())
			if tc.token != "" {
				if err := store.SetToken(tc.token); err != nil {
					t.Fatalf("SetToken: %v", err)
				}
			}
			if got := store.IsValid(); got != tc.want {
				t.Fatalf("IsValid() with token %q = %v, want %v", tc.token, got, tc.want)
			}
		})
	}
}

func TestTokenLifecycle(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	invalidated := 0
	store.OnInvalidate(func() { invalidated++ })

	if err := store.SetToken("aaa.bbb.ccc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if got := store.Token(); got != "aaa.bbb.ccc" {
		t.Fatalf("Token() = %q", got)
	}

	issued, ok := store.IssuedAt()
	if !ok {
		t.Fatal("IssuedAt missing after SetToken")
	}
	if !issued.Equal(now) {
		t.Fatalf("IssuedAt = %v, want %v", issued, now)
	}

	if err := store.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if store.Token() != "" {
		t.Fatal("token survived RemoveToken")
	}
	if _, ok := store.IssuedAt(); ok {
		t.Fatal("timestamp survived RemoveToken")
	}
	if invalidated != 1 {
		t.Fatalf("invalidation hook fired %d times", invalidated)
	}
}

func TestFileStoragePersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store := NewStore(NewFileStorage(dir))
	if err := store.SetToken("aaa.bbb.ccc"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	// A fresh store over the same directory sees the session, like a page
	// reload reading localStorage.
	reopened := NewStore(NewFileStorage(dir))
	if got := reopened.Token(); got != "aaa.bbb.ccc" {
		t.Fatalf("reopened Token() = %q", got)
	}
	if !reopened.IsValid() {
		t.Fatal("reopened session should be valid")
	}

	if err := reopened.RemoveToken(); err != nil {
		t.Fatalf("RemoveToken: %v", err)
	}
	if store.Token() != "" {
		t.Fatal("removal not visible through the first store")
	}
}
