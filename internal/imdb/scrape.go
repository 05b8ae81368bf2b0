package imdb

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"playtime/internal/media"
)

// maxActors caps the cast list at the top-billed names.
const maxActors = 10

type person struct {
	Name string `json:"name"`
}

// jsonLD models the schema.org payload embedded in every IMDb title page.
type jsonLD struct {
	Type            string      `json:"@type"`
	Name            string      `json:"name"`
	Image           string      `json:"image"`
	DatePublished   string      `json:"datePublished"`
	Duration        string      `json:"duration"`
	Genre           stringList  `json:"genre"`
	AggregateRating *aggregates `json:"aggregateRating"`
	Director        personList  `json:"director"`
	Actor           personList  `json:"actor"`
}

type aggregates struct {
	RatingValue float64 `json:"ratingValue"`
	RatingCount int     `json:"ratingCount"`
}

// stringList tolerates both a single string and an array of strings.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []string{one}
	return nil
}

// personList tolerates both a single object and an array of objects.
type personList []person

func (l *personList) UnmarshalJSON(data []byte) error {
	var many []person
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one person
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = []person{one}
	return nil
}

// nextData models the slices of the page-state payload playtime consumes:
// spoken languages and chart rankings, which schema.org does not carry.
type nextData struct {
	Props struct {
		PageProps struct {
			MainColumnData struct {
				SpokenLanguages struct {
					SpokenLanguages []struct {
						ID string `json:"id"`
					} `json:"spokenLanguages"`
				} `json:"spokenLanguages"`
				RatingsSummary struct {
					TopRanking *struct {
						Rank int `json:"rank"`
					} `json:"topRanking"`
					BottomRanking *struct {
						Rank int `json:"rank"`
					} `json:"bottomRanking"`
				} `json:"ratingsSummary"`
			} `json:"mainColumnData"`
		} `json:"pageProps"`
	} `json:"props"`
}

func movieFromDocument(doc *goquery.Document, id string) (*media.Movie, error) {
	raw := strings.TrimSpace(doc.Find(`script[type="application/ld+json"]`).First().Text())
	if raw == "" {
		return nil, fmt.Errorf("%w: no structured data on title page for %s", ErrNotFound, id)
	}

	var ld jsonLD
	if err := json.Unmarshal([]byte(raw), &ld); err != nil {
		return nil, fmt.Errorf("parse structured data: %w", err)
	}
	if ld.Type != "Movie" {
		return nil, fmt.Errorf("%w: %s is a %q", ErrUnsupported, id, ld.Type)
	}

	movie := &media.Movie{
		ImdbID:       id,
		Title:        ld.Name,
		PrimaryImage: ld.Image,
		Year:         yearFromDate(ld.DatePublished),
		Genres:       ld.Genre,
		Runtime:      durationMinutes(ld.Duration),
	}
	if ld.AggregateRating != nil {
		movie.Rating = ld.AggregateRating.RatingValue
		movie.VoteCount = ld.AggregateRating.RatingCount
	}
	for _, d := range ld.Director {
		movie.Directors = append(movie.Directors, d.Name)
	}
	for i, a := range ld.Actor {
		if i >= maxActors {
			break
		}
		movie.Actors = append(movie.Actors, a.Name)
	}

	enrichFromPageState(doc, movie)
	return movie, nil
}

// enrichFromPageState pulls fields the JSON-LD payload lacks. Everything here
// is best effort: a layout change degrades the record instead of failing it.
func enrichFromPageState(doc *goquery.Document, movie *media.Movie) {
	raw := strings.TrimSpace(doc.Find(`script#__NEXT_DATA__`).First().Text())
	if raw == "" {
		return
	}
	var state nextData
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return
	}
	main := state.Props.PageProps.MainColumnData
	for _, lang := range main.SpokenLanguages.SpokenLanguages {
		if lang.ID != "" {
			movie.LanguageCodes = append(movie.LanguageCodes, lang.ID)
		}
	}
	if top := main.RatingsSummary.TopRanking; top != nil {
		rank := top.Rank
		movie.TopRanking = &rank
	}
	if bottom := main.RatingsSummary.BottomRanking; bottom != nil {
		rank := bottom.Rank
		movie.BottomRanking = &rank
	}
}

func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// durationMinutes converts an ISO 8601 duration like "PT1H30M" to minutes.
func durationMinutes(duration string) int {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(duration))
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}
