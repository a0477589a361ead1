package column

import (
	"testing"

	"github.com/google/uuid"
)

func getTestUuids() (uuids []uuid.UUID, err error) {
	uuid1, err := uuid.Parse("603966d6-ed93-11ec-8ea0-0242ac120002")
	if err != nil {
		return
	}
	uuid2, err := uuid.Parse("60396956-ed93-11ec-8ea0-0242ac120002")
	if err != nil {
		return
	}

	uuids = []uuid.UUID{uuid1, uuid2}
	return
}

func TestUuid_ScanRow(t *testing.T) {
	uuids, err := getTestUuids()
	if err != nil {
		t.Fatal(err)
	}

	col := NewUUID()
	_, err = col.Append(uuids)
	if err != nil {
		t.Fatal(err)
	}

	// scanning uuid.UUID
	for i := range uuids {
		var u uuid.UUID
		err := col.ScanRow(&u, i)
		if err != nil {
			t.Fatalf("unexpected ScanRow error: %v", err)
		}
		if u != uuids[i] {
			t.Fatalf("ScanRow resulted in %q instead of %q", u, uuids[i])
		}
	}

	// scanning uuid.UUID pointers
	for i := range uuids {
		var u *uuid.UUID
		err := col.ScanRow(&u, i)
		if err != nil {
			t.Fatalf("unexpected ScanRow error: %v", err)
		}
		if u == nil || *u != uuids[i] {
			t.Fatalf("ScanRow resulted in %v instead of %q", u, uuids[i])
		}
	}
}

func TestUuid_AppendRow(t *testing.T) {
	uuids, err := getTestUuids()
	if err != nil {
		t.Fatal(err)
	}

	col := NewUUID()
	for _, u := range uuids {
		if err := col.AppendRow(u); err != nil {
			t.Fatal(err)
		}
	}
	if err := col.AppendRow(null{}); err != nil {
		t.Fatal(err)
	}
	if col.Rows() != len(uuids)+1 {
		t.Fatalf("expected %d rows, got %d", len(uuids)+1, col.Rows())
	}
}
