package identification

import "testing"

func TestParseDirName(t *testing.T) {
	cases := []struct {
		name  string
		title string
		year  int
	}{
		{"Commando.1985.1080p.BluRay.x264", "Commando", 1985},
		{"Predator (1987)", "Predator", 1987},
		{"The.Matrix.1999.720p.WEB-DL.AAC", "The Matrix", 1999},
		{"the matrix", "The Matrix", 0},
		{"COMMANDO", "Commando", 0},
		{"2001.A.Space.Odyssey.1968.2160p", "2001 A Space Odyssey", 1968},
		{"Blade Runner 2049 (2017)", "Blade Runner 2049", 2017},
		{"jackass.4.5.2022.1080p.WEBRip.x264-RARBG", "Jackass 4 5", 2022},
		{"Heat [1995] DVDRip", "Heat", 1995},
		{"Some Movie", "Some Movie", 0},
		{"1080p.x264", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDirName(tc.name)
			if got.Title != tc.title || got.Year != tc.year {
				t.Fatalf("ParseDirName(%q) = %+v, want {%q %d}", tc.name, got, tc.title, tc.year)
			}
		})
	}
}

func TestNormalizeTitleCaseLeavesMixedCaseAlone(t *testing.T) {
	if got := normalizeTitleCase("eXistenZ"); got != "eXistenZ" {
		t.Fatalf("normalizeTitleCase changed a mixed-case title: %q", got)
	}
	if got := normalizeTitleCase("THE TERMINATOR"); got != "The Terminator" {
		t.Fatalf("normalizeTitleCase = %q", got)
	}
}
