package games

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	if got := len(c.Competitions()); got != 5 {
		t.Errorf("competitions = %d, want 5", got)
	}
	if got := len(c.Matches("", "")); got != 10 {
		t.Errorf("matches = %d, want 10", got)
	}
	m, ok := c.Match("g1")
	if !ok {
		t.Fatal("g1 missing")
	}
	if m.Label() != "Man Utd vs Spurs" {
		t.Errorf("label %q", m.Label())
	}
	if len(m.Home.Players) != 3 {
		t.Errorf("home roster %v", m.Home.Players)
	}
}

func TestMatches_Filter(t *testing.T) {
	c := DefaultCatalog()
	prem := c.Matches("prem", "")
	if len(prem) != 4 {
		t.Errorf("prem matches = %d, want 4", len(prem))
	}
	for _, m := range prem {
		if m.Competition != "prem" {
			t.Errorf("match %s in %s", m.ID, m.Competition)
		}
	}
	got := c.Matches("", "BARCA")
	if len(got) != 0 {
		t.Errorf("search is substring, not alias: %v", got)
	}
	got = c.Matches("", "barcel")
	if len(got) != 2 {
		t.Errorf("barcelona matches = %d, want 2", len(got))
	}
	if got := c.Matches("la_liga", "madrid"); len(got) != 1 || got[0].ID != "g4" {
		t.Errorf("la_liga/madrid = %v", got)
	}
}

func TestLookup(t *testing.T) {
	c := DefaultCatalog()
	ms, err := c.Lookup([]string{"g3", "g1", "g2"})
	if err != nil {
		t.Fatal(err)
	}
	if ms[0].ID != "g3" || ms[1].ID != "g1" || ms[2].ID != "g2" {
		t.Errorf("order not preserved: %v", ms)
	}
	if _, err := c.Lookup([]string{"g1", "g1", "g2"}); err == nil {
		t.Error("duplicate selection should fail")
	}
	if _, err := c.Lookup([]string{"g1", "nope"}); !errors.Is(err, ErrSelection) {
		t.Error("unknown match should fail")
	}
}

func TestRegister_ReplacesInPlace(t *testing.T) {
	c := DefaultCatalog()
	m, _ := c.Match("g2")
	m.Competition = "fa_cup"
	c.Register(m)
	if got := len(c.Matches("", "")); got != 10 {
		t.Errorf("re-register grew catalog to %d", got)
	}
	if got, _ := c.Match("g2"); got.Competition != "fa_cup" {
		t.Errorf("replace failed: %+v", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	src := `competitions:
  - key: eredivisie
    name: Eredivisie
teams:
  - id: ajx
    name: Ajax
    players: [Bergwijn, Taylor]
  - id: psv
    name: PSV
    players: [de Jong, Til]
matches:
  - id: n1
    competition: eredivisie
    home: ajx
    away: psv
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	c := DefaultCatalog()
	if err := c.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	m, ok := c.Match("n1")
	if !ok {
		t.Fatal("n1 not loaded")
	}
	if m.Home.Name != "Ajax" || len(m.Away.Players) != 2 {
		t.Errorf("loaded %+v", m)
	}
	if len(c.Competitions()) != 6 {
		t.Errorf("competitions = %d", len(c.Competitions()))
	}
}

func TestParseFile_UnknownTeam(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	src := "matches:\n  - id: x\n    home: a\n    away: b\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ParseFile(path); err == nil {
		t.Fatal("expected unknown team error")
	}
}

func TestSplitJoinPlayers(t *testing.T) {
	got := SplitPlayers(" Kane, Musiala ,,Kimmich ")
	if len(got) != 3 || got[1] != "Musiala" {
		t.Errorf("SplitPlayers = %q", got)
	}
	if JoinPlayers(got) != "Kane,Musiala,Kimmich" {
		t.Errorf("JoinPlayers = %q", JoinPlayers(got))
	}
}
