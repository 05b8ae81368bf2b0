package media

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Category is a grouping dimension for derived directory trees. The set is
// closed: unknown names are a configuration error, not an empty grouping.
type Category string

const (
	CategoryGenres    Category = "genres"
	CategoryYear      Category = "year"
	CategoryDirectors Category = "directors"
	CategoryActors    Category = "actors"
	CategoryRuntime   Category = "runtime"
	CategoryLanguages Category = "languages"
	CategoryRating    Category = "rating"
	CategoryRankings  Category = "rankings"
)

// Categories lists every supported category.
func Categories() []Category {
	return []Category{
		CategoryGenres,
		CategoryYear,
		CategoryDirectors,
		CategoryActors,
		CategoryRuntime,
		CategoryLanguages,
		CategoryRating,
		CategoryRankings,
	}
}

// ParseCategory validates a category name.
func ParseCategory(name string) (Category, error) {
	for _, cat := range Categories() {
		if string(cat) == name {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// IsPerson reports whether the category groups by person names, which get a
// first-letter bucket level in derived trees and count in "people".
func (c Category) IsPerson() bool {
	return c == CategoryActors || c == CategoryDirectors
}

// Unit returns the count-suffix noun for containers of this category.
func (c Category) Unit() string {
	return "movies"
}

// CategoryValues returns the values this movie contributes to the category.
// Absent optional fields contribute nothing.
func (m Movie) CategoryValues(cat Category, runtimeInterval int) []string {
	switch cat {
	case CategoryGenres:
		return m.Genres
	case CategoryYear:
		if m.Year == 0 {
			return nil
		}
		return []string{strconv.Itoa(m.Year)}
	case CategoryDirectors:
		return m.Directors
	case CategoryActors:
		return m.Actors
	case CategoryRuntime:
		return m.runtimeBucket(runtimeInterval)
	case CategoryLanguages:
		return languageNames(m.LanguageCodes)
	case CategoryRating:
		if m.Rating == 0 {
			return nil
		}
		return []string{strconv.FormatFloat(m.Rating, 'f', 1, 64)}
	case CategoryRankings:
		var values []string
		if m.TopRanking != nil {
			values = append(values, "Top 250")
		}
		if m.BottomRanking != nil {
			values = append(values, "Bottom 100")
		}
		return values
	default:
		return nil
	}
}

func (m Movie) runtimeBucket(interval int) []string {
	if m.Runtime <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = 30
	}
	lower := m.Runtime / interval
	return []string{fmt.Sprintf("%d-%d minutes", interval*lower, interval*(lower+1))}
}

func languageNames(codes []string) []string {
	names := make([]string, 0, len(codes))
	namer := display.English.Languages()
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			names = append(names, code)
			continue
		}
		if name := namer.Name(tag); name != "" {
			names = append(names, name)
		} else {
			names = append(names, code)
		}
	}
	return names
}
