package world

import "testing"

func TestStorePutGetRoundTrip(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	payload := []byte{1, 2, 3, 4, 5}
	if err := store.Put(3, -7, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(3, -7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected column to be present")
	}
	if string(got) != string(payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestStoreGetMissingReturnsNotOK(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	_, ok, err := store.Get(99, 99)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected missing column to report not-ok")
	}
}

func TestStoreDelete(t *testing.T) {
	store, err := OpenStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.Put(1, 1, []byte{9}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(1, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, ok, err := store.Get(1, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected deleted column to be absent")
	}
}
