package main

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Directory", "Title"},
		[][]string{
			{"/movies/Commando.1985.1080p", "Commando"},
			{"/movies/Predator (1987)"},
		},
		[]columnAlignment{alignLeft, alignLeft},
		[]string{"2 directories", "2 movies"},
	)
	for _, want := range []string{"Directory", "Commando", "Predator", "2 directories", "2 movies"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil, nil, nil); out != "" {
		t.Fatalf("renderTable with no headers = %q", out)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	want := map[string]bool{
		"update": false, "symlink": false, "download": false,
		"ls": false, "cache": false, "config": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
