package games

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	goalladder "github.com/Ashenafi-pixel/goal-ladder"

	"gopkg.in/yaml.v3"
)

// Team is one side of a match with the players who can score for it.
type Team struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Players []string `json:"players" yaml:"players"`
}

// Match is a fixture between two teams in one competition. Immutable once a session starts.
type Match struct {
	ID          string `json:"id" yaml:"id"`
	Competition string `json:"competition" yaml:"competition"`
	Home        Team   `json:"home" yaml:"home"`
	Away        Team   `json:"away" yaml:"away"`
}

// Label is the "Home vs Away" text used by the event ticker.
func (m Match) Label() string {
	return m.Home.Name + " vs " + m.Away.Name
}

// Competition groups matches for the bet slip.
type Competition struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// ErrSelection wraps every Lookup failure.
var ErrSelection = errors.New("invalid match selection")

type Catalog struct {
	mu           sync.RWMutex
	competitions []Competition
	matches      []Match
	index        map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// AddCompetition registers or renames a competition.
func (c *Catalog) AddCompetition(comp Competition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.competitions {
		if c.competitions[i].Key == comp.Key {
			c.competitions[i].Name = comp.Name
			return
		}
	}
	c.competitions = append(c.competitions, comp)
}

// Register adds a match, replacing an existing one with the same ID in place.
func (c *Catalog) Register(m Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i, ok := c.index[m.ID]; ok {
		c.matches[i] = m
		return
	}
	c.index[m.ID] = len(c.matches)
	c.matches = append(c.matches, m)
}

func (c *Catalog) Match(id string) (Match, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		return Match{}, false
	}
	return c.matches[i], true
}

// Lookup resolves match IDs in order. Unknown or repeated IDs fail the whole lookup.
func (c *Catalog) Lookup(ids []string) ([]Match, error) {
	seen := make(map[string]bool, len(ids))
	out := make([]Match, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, fmt.Errorf("%w: match %s selected twice", ErrSelection, id)
		}
		seen[id] = true
		m, ok := c.Match(id)
		if !ok {
			return nil, fmt.Errorf("%w: unknown match %s", ErrSelection, id)
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *Catalog) Competitions() []Competition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Competition(nil), c.competitions...)
}

// Matches lists matches, optionally filtered by competition key and a case-insensitive team-name search.
func (c *Catalog) Matches(competition, search string) []Match {
	c.mu.RLock()
	defer c.mu.RUnlock()
	search = strings.ToLower(strings.TrimSpace(search))
	out := []Match{}
	for _, m := range c.matches {
		if competition != "" && m.Competition != competition {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Home.Name), search) &&
			!strings.Contains(strings.ToLower(m.Away.Name), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// catalogFile is the YAML layout shared by LoadFile and cmd/catalog_importer.
type catalogFile struct {
	Competitions []Competition `yaml:"competitions"`
	Teams        []Team        `yaml:"teams"`
	Matches      []struct {
		ID          string `yaml:"id"`
		Competition string `yaml:"competition"`
		Home        string `yaml:"home"`
		Away        string `yaml:"away"`
	} `yaml:"matches"`
}

// ParseFile reads a catalog YAML file into competitions and fully resolved matches.
func ParseFile(path string) ([]Competition, []Match, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	teams := make(map[string]Team, len(f.Teams))
	for _, t := range f.Teams {
		teams[t.ID] = t
	}
	matches := make([]Match, 0, len(f.Matches))
	for _, m := range f.Matches {
		home, ok := teams[m.Home]
		if !ok {
			return nil, nil, fmt.Errorf("match %s: unknown home team %s", m.ID, m.Home)
		}
		away, ok := teams[m.Away]
		if !ok {
			return nil, nil, fmt.Errorf("match %s: unknown away team %s", m.ID, m.Away)
		}
		matches = append(matches, Match{ID: m.ID, Competition: m.Competition, Home: home, Away: away})
	}
	return f.Competitions, matches, nil
}

// LoadFile merges a catalog YAML file into c.
func (c *Catalog) LoadFile(path string) error {
	comps, matches, err := ParseFile(path)
	if err != nil {
		return err
	}
	for _, comp := range comps {
		c.AddCompetition(comp)
	}
	for _, m := range matches {
		c.Register(m)
	}
	return nil
}

// LoadFromDB merges matches from the ladder_matches table. Players are stored comma-separated.
func (c *Catalog) LoadFromDB() error {
	db, err := goalladder.GetDB()
	if err != nil {
		return err
	}
	if db == nil {
		return goalladder.ErrNoDB
	}
	rows, err := db.Query(`SELECT match_id, competition, home_id, home_name, home_players, away_id, away_name, away_players FROM ladder_matches WHERE enabled = true ORDER BY match_id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	var list []Match
	for rows.Next() {
		var m Match
		var homePlayers, awayPlayers string
		if err := rows.Scan(&m.ID, &m.Competition, &m.Home.ID, &m.Home.Name, &homePlayers, &m.Away.ID, &m.Away.Name, &awayPlayers); err != nil {
			return err
		}
		if m.ID == "" {
			continue
		}
		m.Home.Players = SplitPlayers(homePlayers)
		m.Away.Players = SplitPlayers(awayPlayers)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for _, m := range list {
		c.Register(m)
	}
	return nil
}

// SplitPlayers parses the comma-separated roster column.
func SplitPlayers(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinPlayers is the inverse of SplitPlayers.
func JoinPlayers(players []string) string {
	return strings.Join(players, ",")
}
