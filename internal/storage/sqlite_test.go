package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/commitlab/pubs/internal/publication"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "pubs.db"))
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func writeSource(t *testing.T, dir, content string) SourceInfo {
	t.Helper()
	path := filepath.Join(dir, "publications.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	info, err := StatSource(path)
	if err != nil {
		t.Fatal(err)
	}
	return info
}

func testRecords() []publication.Record {
	return []publication.Record{
		{Title: "Zeta", ItemType: "article", Year: 2020, DOI: "10.1/ABC"},
		{Title: "Alpha", ItemType: "misc", DOI: "10.1/abc"},
		{Title: "Same Title", ItemType: "article", Year: 2019},
		{Title: "Same Title", ItemType: "inproceedings", Year: 2019, Featured: true},
	}
}

func TestRebuildAndListAll_PreservesOrder(t *testing.T) {
	db := openTestDB(t)
	src := writeSource(t, t.TempDir(), "[]")

	n, err := db.RebuildFromRecords(testRecords(), src)
	if err != nil {
		t.Fatalf("RebuildFromRecords() error = %v", err)
	}
	if n != 4 {
		t.Errorf("RebuildFromRecords() = %d, want 4", n)
	}

	got, err := db.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	want := testRecords()
	if len(got) != len(want) {
		t.Fatalf("ListAll() returned %d records", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListAll()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	count, err := db.Count()
	if err != nil || count != 4 {
		t.Errorf("Count() = %d, %v", count, err)
	}
}

func TestRebuild_ReplacesPreviousContent(t *testing.T) {
	db := openTestDB(t)
	src := writeSource(t, t.TempDir(), "[]")

	if _, err := db.RebuildFromRecords(testRecords(), src); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RebuildFromRecords(testRecords()[:1], src); err != nil {
		t.Fatal(err)
	}
	count, _ := db.Count()
	if count != 1 {
		t.Errorf("Count() after rebuild = %d, want 1", count)
	}
}

func TestSource_EmptyCache(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Source(); !errors.Is(err, ErrCacheEmpty) {
		t.Errorf("Source() error = %v, want ErrCacheEmpty", err)
	}
	stale, err := db.IsStale("anything.json")
	if err != nil || !stale {
		t.Errorf("IsStale() on empty cache = %v, %v", stale, err)
	}
}

func TestIsStale(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	src := writeSource(t, dir, "[]")

	if _, err := db.RebuildFromRecords(nil, src); err != nil {
		t.Fatal(err)
	}
	stale, err := db.IsStale(src.Path)
	if err != nil || stale {
		t.Fatalf("IsStale() right after rebuild = %v, %v", stale, err)
	}

	if err := os.WriteFile(src.Path, []byte(`[{"title":"new"}]`), 0644); err != nil {
		t.Fatal(err)
	}
	later := src.ModTime.Add(2 * time.Second)
	if err := os.Chtimes(src.Path, later, later); err != nil {
		t.Fatal(err)
	}
	stale, err = db.IsStale(src.Path)
	if err != nil || !stale {
		t.Errorf("IsStale() after edit = %v, %v", stale, err)
	}
}

func TestFindByCitationKey(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.RebuildFromRecords(testRecords(), writeSource(t, t.TempDir(), "[]")); err != nil {
		t.Fatal(err)
	}

	got, err := db.FindByCitationKey("sametitle2019")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("FindByCitationKey() returned %d records, want 2", len(got))
	}

	got, err = db.FindByCitationKey("missing")
	if err != nil || len(got) != 0 {
		t.Errorf("FindByCitationKey(missing) = %v, %v", got, err)
	}
}

func TestCollisions(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.RebuildFromRecords(testRecords(), writeSource(t, t.TempDir(), "[]")); err != nil {
		t.Fatal(err)
	}

	keys, err := db.CitationKeyCollisions()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0].Value != "sametitle2019" || len(keys[0].Titles) != 2 {
		t.Errorf("CitationKeyCollisions() = %+v", keys)
	}

	dois, err := db.DOICollisions()
	if err != nil {
		t.Fatal(err)
	}
	if len(dois) != 1 || dois[0].Value != "10.1/abc" {
		t.Errorf("DOICollisions() = %+v", dois)
	}
	if len(dois) == 1 && (dois[0].Titles[0] != "Zeta" || dois[0].Titles[1] != "Alpha") {
		t.Errorf("DOICollisions() titles = %v, want source order", dois[0].Titles)
	}
}
