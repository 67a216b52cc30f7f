package storage

import (
	"bytes"
	"testing"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	data := []byte{0xff, 0xfb, 0x90, 0x00}
	if err := s.Put(3, "kick", "audio/mpeg", data); err != nil {
		t.Fatal(err)
	}

	records, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.ID != 3 || rec.Name != "kick" || rec.MIME != "audio/mpeg" || !bytes.Equal(rec.Data, data) {
		t.Errorf("record = %+v", rec)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Put(0, "old", "audio/wav", []byte{0x01}); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(0, "new", "audio/mpeg", []byte{0x02}); err != nil {
		t.Fatal(err)
	}

	records, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != "new" {
		t.Errorf("records = %+v, want single replaced record", records)
	}
}

func TestGetAllOrderedByID(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	for _, id := range []int{20, 3, 11} {
		if err := s.Put(id, "clip", "audio/wav", []byte{byte(id)}); err != nil {
			t.Fatal(err)
		}
	}

	records, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	want := []int{3, 11, 20}
	for i, rec := range records {
		if rec.ID != want[i] {
			t.Fatalf("order = %v at %d, want %v", rec.ID, i, want)
		}
	}
}

func TestDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Put(5, "x", "audio/wav", []byte{0x01}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(5); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(5); err != nil {
		t.Errorf("deleting a missing row should be a no-op, got %v", err)
	}

	records, err := s.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after delete, want 0", len(records))
	}
}

func TestReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(7, "persisted", "audio/mpeg", []byte{0x0a}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	records, err := s2.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Name != "persisted" {
		t.Errorf("records after reopen = %+v", records)
	}
}
