package organizer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"playtime/internal/logging"
	"playtime/internal/media"
	"playtime/internal/moviecache"
)

func setupCache(t *testing.T) (*moviecache.Cache, string, string) {
	t.Helper()
	cache, err := moviecache.Open(t.TempDir(), logging.NewNop())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	collection := t.TempDir()
	commando := filepath.Join(collection, "Commando.1985.1080p")
	predator := filepath.Join(collection, "Predator (1987)")
	for _, dir := range []string{commando, predator} {
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	cache.SetDirectory(commando, "tt0088944")
	cache.SetDirectory(predator, "tt0093773")
	cache.SetMovie(media.Movie{
		ImdbID:    "tt0088944",
		Title:     "Commando",
		Year:      1985,
		Genres:    []string{"Action"},
		Actors:    []string{"Arnold Schwarzenegger", "Rae Dawn Chong"},
		Directors: []string{"Mark L. Lester"},
		Runtime:   90,
	})
	cache.SetMovie(media.Movie{
		ImdbID:    "tt0093773",
		Title:     "Predator",
		Year:      1987,
		Genres:    []string{"Action", "Horror"},
		Actors:    []string{"Arnold Schwarzenegger", "Carl Weathers"},
		Directors: []string{"John McTiernan"},
		Runtime:   107,
	})
	return cache, commando, predator
}

func build(t *testing.T, cache *moviecache.Cache, target string, categories ...media.Category) {
	t.Helper()
	builder := New(cache, Options{Relative: true}, logging.NewNop())
	if err := builder.Build(context.Background(), target, categories); err != nil {
		t.Fatalf("Build: %v", err)
	}
}

func TestBuildGenresTree(t *testing.T) {
	cache, commando, _ := setupCache(t)
	target := t.TempDir()
	build(t, cache, target, media.CategoryGenres)

	// Both movies are Action, only Predator is Horror.
	actionDir := filepath.Join(target, "genres", "Action (2 movies)")
	horrorDir := filepath.Join(target, "genres", "Horror (1 movies)")
	for _, dir := range []string{actionDir, horrorDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("missing container %s: %v", dir, err)
		}
	}

	link := filepath.Join(actionDir, "Commando (1985)", filepath.Base(commando))
	info, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("missing movie link: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("%s is not a symlink", link)
	}
	resolved, err := filepath.EvalSymlinks(link)
	if err != nil {
		t.Fatalf("broken movie link: %v", err)
	}
	wantTarget, _ := filepath.EvalSymlinks(commando)
	if resolved != wantTarget {
		t.Fatalf("link resolves to %q, want %q", resolved, wantTarget)
	}
}

func TestBuildPersonCategoryLetterBuckets(t *testing.T) {
	cache, _, _ := setupCache(t)
	target := t.TempDir()
	build(t, cache, target, media.CategoryActors)

	// Arnold is in both movies, under the A bucket with two other actors'
	// buckets beside it.
	arnold := filepath.Join(target, "actors", "A (1 people)", "Arnold Schwarzenegger (2 movies)")
	if _, err := os.Stat(arnold); err != nil {
		t.Fatalf("missing actor container: %v", err)
	}
	carl := filepath.Join(target, "actors", "C (1 people)", "Carl Weathers (1 movies)")
	if _, err := os.Stat(carl); err != nil {
		t.Fatalf("missing actor container: %v", err)
	}
}

func TestBuildYearAndRuntime(t *testing.T) {
	cache, _, _ := setupCache(t)
	target := t.TempDir()
	build(t, cache, target, media.CategoryYear, media.CategoryRuntime)

	checks := []string{
		filepath.Join(target, "year", "1985 (1 movies)"),
		filepath.Join(target, "year", "1987 (1 movies)"),
		filepath.Join(target, "runtime", "90-120 minutes (2 movies)"),
	}
	for _, dir := range checks {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("missing container %s: %v", dir, err)
		}
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	cache, _, _ := setupCache(t)
	target := t.TempDir()
	build(t, cache, target, media.CategoryGenres)
	build(t, cache, target, media.CategoryGenres)

	entries, err := os.ReadDir(filepath.Join(target, "genres"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("genres dir has %v after rebuild, want exactly Action and Horror", names)
	}
}

func TestBuildRemovesStaleContainers(t *testing.T) {
	cache, _, _ := setupCache(t)
	target := t.TempDir()
	build(t, cache, target, media.CategoryGenres)

	// A leftover from an earlier run with different data must not survive.
	stale := filepath.Join(target, "genres", "Western (1 movies)")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}
	build(t, cache, target, media.CategoryGenres)
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatal("stale container survived a rebuild")
	}
}

func TestBuildDuplicateCopiesBothLinked(t *testing.T) {
	cache, commando, _ := setupCache(t)

	second := filepath.Join(t.TempDir(), "Commando.1985.REMUX")
	if err := os.Mkdir(second, 0o755); err != nil {
		t.Fatal(err)
	}
	cache.SetDirectory(second, "tt0088944")

	target := t.TempDir()
	build(t, cache, target, media.CategoryYear)

	movieDir := filepath.Join(target, "year", "1985 (1 movies)", "Commando (1985)")
	entries, err := os.ReadDir(movieDir)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, entry := range entries {
		names[entry.Name()] = true
	}
	if !names[filepath.Base(commando)] || !names[filepath.Base(second)] {
		t.Fatalf("movie dir entries = %v, want links for both copies", names)
	}
}

func TestBuildPlacesPosters(t *testing.T) {
	cache, _, _ := setupCache(t)
	if err := os.WriteFile(cache.CoverPath("tt0088944"), []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := t.TempDir()
	build(t, cache, target, media.CategoryYear)

	shared := filepath.Join(target, ".covers", "tt0088944.jpg")
	if _, err := os.Stat(shared); err != nil {
		t.Fatalf("shared cover missing: %v", err)
	}
	poster := filepath.Join(target, "year", "1985 (1 movies)", "Commando (1985)", "poster.jpg")
	info, err := os.Lstat(poster)
	if err != nil {
		t.Fatalf("poster missing: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatal("relative build should symlink posters")
	}
	// Predator has no cover cached; its movie dir holds the copy link only.
	predatorPoster := filepath.Join(target, "year", "1987 (1 movies)", "Predator (1987)", "poster.jpg")
	if _, err := os.Lstat(predatorPoster); !os.IsNotExist(err) {
		t.Fatal("poster placed without a cached cover")
	}
}

func TestBuildAbsoluteLinksAndCopiedPosters(t *testing.T) {
	cache, commando, _ := setupCache(t)
	if err := os.WriteFile(cache.CoverPath("tt0088944"), []byte("jpegdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	target := t.TempDir()
	builder := New(cache, Options{Relative: false}, logging.NewNop())
	if err := builder.Build(context.Background(), target, []media.Category{media.CategoryYear}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	movieDir := filepath.Join(target, "year", "1985 (1 movies)", "Commando (1985)")
	link := filepath.Join(movieDir, filepath.Base(commando))
	targetPath, err := os.Readlink(link)
	if err != nil {
		t.Fatal(err)
	}
	if !filepath.IsAbs(targetPath) {
		t.Fatalf("link target %q, want absolute", targetPath)
	}

	poster := filepath.Join(movieDir, "poster.jpg")
	info, err := os.Lstat(poster)
	if err != nil {
		t.Fatalf("poster missing: %v", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Fatal("absolute build should copy posters")
	}
}
