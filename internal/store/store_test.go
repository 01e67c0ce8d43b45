package store

import (
	"os"
	"testing"

	"github.com/paylens/payreport/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGetDelete(t *testing.T) {
	s := openTestStore(t)

	if err := s.Put("loadedConversationId", "conv-1"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	value, ok, err := s.Get("loadedConversationId")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok || value != "conv-1" {
		t.Errorf("Get() = %q, %v; want conv-1, true", value, ok)
	}

	if err := s.Delete("loadedConversationId"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	_, ok, err = s.Get("loadedConversationId")
	if err != nil {
		t.Fatalf("Get() after delete error: %v", err)
	}
	if ok {
		t.Error("key should be absent after delete")
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	value, ok, err := s.Get("nope")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Get() = %q, %v; want empty, false", value, ok)
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	s := openTestStore(t)
	if err := s.Put("k", "first"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := s.Put("k", "second"); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	value, _, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if value != "second" {
		t.Errorf("Get() = %q, want second", value)
	}
}

func TestStore_DeleteMissingIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.Delete("never-existed"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
}
