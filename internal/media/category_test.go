package media

import (
	"reflect"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, cat := range Categories() {
		got, err := ParseCategory(string(cat))
		if err != nil {
			t.Fatalf("ParseCategory(%q) returned error: %v", cat, err)
		}
		if got != cat {
			t.Fatalf("ParseCategory(%q) = %q", cat, got)
		}
	}
	if _, err := ParseCategory("moods"); err == nil {
		t.Fatal("ParseCategory accepted an unknown category")
	}
}

func TestCategoryValues(t *testing.T) {
	top := 42
	movie := Movie{
		ImdbID:        "tt0093773",
		Title:         "Predator",
		Year:          1987,
		Genres:        []string{"Action", "Horror"},
		Directors:     []string{"John McTiernan"},
		Actors:        []string{"Arnold Schwarzenegger", "Carl Weathers"},
		Runtime:       107,
		LanguageCodes: []string{"en", "es"},
		Rating:        7.8,
		TopRanking:    &top,
	}

	cases := []struct {
		category Category
		want     []string
	}{
		{CategoryGenres, []string{"Action", "Horror"}},
		{CategoryYear, []string{"1987"}},
		{CategoryDirectors, []string{"John McTiernan"}},
		{CategoryActors, []string{"Arnold Schwarzenegger", "Carl Weathers"}},
		{CategoryRuntime, []string{"90-120 minutes"}},
		{CategoryLanguages, []string{"English", "Spanish"}},
		{CategoryRating, []string{"7.8"}},
		{CategoryRankings, []string{"Top 250"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.category), func(t *testing.T) {
			got := movie.CategoryValues(tc.category, 30)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("CategoryValues(%s) = %v, want %v", tc.category, got, tc.want)
			}
		})
	}
}

func TestCategoryValuesAbsentFields(t *testing.T) {
	movie := Movie{ImdbID: "tt0000001", Title: "Unknown"}
	for _, cat := range Categories() {
		if got := movie.CategoryValues(cat, 30); len(got) != 0 {
			t.Fatalf("CategoryValues(%s) = %v for an empty record, want none", cat, got)
		}
	}
}

func TestRuntimeBucketBoundaries(t *testing.T) {
	cases := []struct {
		runtime  int
		interval int
		want     string
	}{
		{89, 30, "60-90 minutes"},
		{90, 30, "90-120 minutes"},
		{91, 30, "90-120 minutes"},
		{107, 45, "90-135 minutes"},
		{107, 0, "90-120 minutes"}, // zero interval falls back to the default
	}
	for _, tc := range cases {
		movie := Movie{Runtime: tc.runtime}
		got := movie.CategoryValues(CategoryRuntime, tc.interval)
		if len(got) != 1 || got[0] != tc.want {
			t.Fatalf("runtime %d interval %d = %v, want [%s]", tc.runtime, tc.interval, got, tc.want)
		}
	}
}

func TestLanguageNamesFallsBackToCode(t *testing.T) {
	movie := Movie{LanguageCodes: []string{"en", "!!"}}
	got := movie.CategoryValues(CategoryLanguages, 30)
	if len(got) != 2 {
		t.Fatalf("CategoryValues(languages) = %v, want 2 entries", got)
	}
	if got[0] != "English" {
		t.Fatalf("got[0] = %q, want English", got[0])
	}
	if got[1] != "!!" {
		t.Fatalf("got[1] = %q, want the raw code back", got[1])
	}
}

func TestBothRankings(t *testing.T) {
	top, bottom := 1, 100
	movie := Movie{TopRanking: &top, BottomRanking: &bottom}
	got := movie.CategoryValues(CategoryRankings, 30)
	want := []string{"Top 250", "Bottom 100"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("CategoryValues(rankings) = %v, want %v", got, want)
	}
}

func TestIsPersonAndUnit(t *testing.T) {
	if !CategoryActors.IsPerson() || !CategoryDirectors.IsPerson() {
		t.Fatal("actors and directors should be person categories")
	}
	if CategoryGenres.IsPerson() || CategoryYear.IsPerson() {
		t.Fatal("genres and year should not be person categories")
	}
	if CategoryGenres.Unit() != "movies" {
		t.Fatalf("Unit() = %q", CategoryGenres.Unit())
	}
}
