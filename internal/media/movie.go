package media

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Movie is the cached metadata record for a single title. Records are
// immutable once fetched; a refresh replaces the whole value.
type Movie struct {
	ImdbID        string   `json:"imdb_id"`
	Title         string   `json:"title"`
	PrimaryImage  string   `json:"primary_image"`
	Year          int      `json:"year"`
	LanguageCodes []string `json:"language_codes"`
	Genres        []string `json:"genres"`
	Rating        float64  `json:"rating"`
	VoteCount     int      `json:"vote_count"`
	Runtime       int      `json:"runtime"`
	TopRanking    *int     `json:"top_ranking,omitempty"`
	BottomRanking *int     `json:"bottom_ranking,omitempty"`
	Directors     []string `json:"directors,omitempty"`
	Actors        []string `json:"actors,omitempty"`
	DataEpoch     int64    `json:"data_epoch"`
}

// CoverFilename returns the cover store filename for this movie.
func (m Movie) CoverFilename() string {
	return m.ImdbID + ".jpg"
}

// ImdbURL returns the canonical IMDb title page URL.
func (m Movie) ImdbURL() string {
	return fmt.Sprintf("https://www.imdb.com/title/%s/", m.ImdbID)
}

// Short is a compact description used in log output.
func (m Movie) Short() string {
	return fmt.Sprintf("%s (%d) [%s]", m.Title, m.Year, strings.Join(m.Genres, ", "))
}

// DirName returns the directory name used for this movie in derived trees.
// Path separators in titles would split the path, so they are replaced.
func (m Movie) DirName() string {
	name := fmt.Sprintf("%s (%d)", m.Title, m.Year)
	return strings.ReplaceAll(name, string(os.PathSeparator), "_")
}

// DataAgeDays returns the number of whole 24 hour periods since this record
// was fetched.
func (m Movie) DataAgeDays() int {
	return m.dataAgeDays(time.Now())
}

func (m Movie) dataAgeDays(now time.Time) int {
	age := now.Unix() - m.DataEpoch
	if age < 0 {
		return 0
	}
	return int(age / 86400)
}
