package identification

import (
	"os"
	"path/filepath"
	"testing"

	"playtime/internal/logging"
)

func TestFindIDInTextfilesFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("see https://www.imdb.com/title/tt0093773/\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("tt0088944\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := findIDInTextfiles([]string{a, b}, logging.NewNop()); got != "tt0093773" {
		t.Fatalf("findIDInTextfiles = %q, want tt0093773", got)
	}
}

func TestFindIDInTextfilesMissingFile(t *testing.T) {
	if got := findIDInTextfiles([]string{filepath.Join(t.TempDir(), "nope.txt")}, logging.NewNop()); got != "" {
		t.Fatalf("findIDInTextfiles = %q for a missing file, want empty", got)
	}
}

func TestFindTextfilesSkipsOversized(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small.nfo")
	big := filepath.Join(dir, "big.txt")
	if err := os.WriteFile(small, []byte("tt0000001"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(big, make([]byte, 2048), 0o644); err != nil {
		t.Fatal(err)
	}

	got := findTextfiles(dir, []string{"txt", "nfo"}, 1024, logging.NewNop())
	if len(got) != 1 || got[0] != small {
		t.Fatalf("findTextfiles = %v, want only %s", got, small)
	}
}

func TestFindTextfilesIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "movie.mkv"), []byte("tt0000001"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := findTextfiles(dir, []string{"txt", "nfo"}, 1024, logging.NewNop()); len(got) != 0 {
		t.Fatalf("findTextfiles = %v, want none", got)
	}
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
	data := []byte{'c', 'a', 'f', 0xE9, ' ', 't', 't', '0', '0', '0', '0', '0', '0', '1'}
	got := decodeText(data)
	if got != "café tt0000001" {
		t.Fatalf("decodeText = %q", got)
	}
}

func TestDecodeTextValidUTF8(t *testing.T) {
	if got := decodeText([]byte("café")); got != "café" {
		t.Fatalf("decodeText = %q", got)
	}
}
