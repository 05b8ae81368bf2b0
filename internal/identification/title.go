package identification

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParsedName is the probable title and release year extracted from a
// directory name following common release naming conventions.
type ParsedName struct {
	Title string
	Year  int
}

var yearPattern = regexp.MustCompile(`(?:^|[\(\[\.\-_,\s])((?:19|20)\d{2})(?:[\)\]\.\-_,\s]|$)`)

// releaseTokens end the title portion of a release name. Everything from the
// first such token onward is quality/source noise.
var releaseTokens = map[string]struct{}{
	"480p": {}, "576p": {}, "720p": {}, "1080p": {}, "1080i": {}, "2160p": {}, "4k": {},
	"bluray": {}, "blu-ray": {}, "bdrip": {}, "brrip": {}, "bdremux": {}, "remux": {},
	"webrip": {}, "web-dl": {}, "webdl": {}, "web": {}, "hdtv": {}, "pdtv": {},
	"dvdrip": {}, "dvdscr": {}, "dvd": {}, "hdrip": {}, "camrip": {}, "cam": {}, "ts": {},
	"x264": {}, "x265": {}, "h264": {}, "h265": {}, "hevc": {}, "avc": {}, "xvid": {}, "divx": {},
	"aac": {}, "ac3": {}, "dts": {}, "dd5": {}, "flac": {}, "truehd": {}, "atmos": {},
	"proper": {}, "repack": {}, "internal": {}, "limited": {}, "unrated": {},
	"extended": {}, "remastered": {}, "multi": {}, "retail": {}, "hdr": {}, "hdr10": {},
}

// ParseDirName extracts a probable title and year from a bare directory name.
// An empty Title means the name could not be parsed at all.
func ParseDirName(name string) ParsedName {
	parsed := ParsedName{}

	// Year first, so the title can be cut at its position. The last match
	// wins: titles may themselves contain a year ("2001 A Space Odyssey").
	working := name
	if matches := yearPattern.FindAllStringSubmatchIndex(name, -1); len(matches) > 0 {
		last := matches[len(matches)-1]
		year, _ := strconv.Atoi(name[last[2]:last[3]])
		parsed.Year = year
		if last[2] > 0 {
			working = name[:last[2]]
		}
	}

	words := strings.FieldsFunc(working, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == ' ' || r == '(' || r == ')' || r == '[' || r == ']'
	})
	title := make([]string, 0, len(words))
	for _, word := range words {
		if _, noise := releaseTokens[strings.ToLower(word)]; noise {
			break
		}
		title = append(title, word)
	}

	parsed.Title = normalizeTitleCase(strings.Join(title, " "))
	return parsed
}

// normalizeTitleCase title-cases names written in a single case ("the matrix",
// "COMMANDO") and leaves mixed-case names alone.
func normalizeTitleCase(title string) string {
	hasUpper := strings.ContainsFunc(title, unicode.IsUpper)
	hasLower := strings.ContainsFunc(title, unicode.IsLower)
	if hasUpper && hasLower {
		return title
	}
	return cases.Title(language.Und).String(strings.ToLower(title))
}
