package games

var defaultTeams = map[string]Team{
	"1":  {ID: "1", Name: "Man Utd", Players: []string{"Fernandes", "Rashford", "Garnacho"}},
	"2":  {ID: "2", Name: "Chelsea", Players: []string{"Palmer", "Sterling", "Jackson"}},
	"3":  {ID: "3", Name: "Liverpool", Players: []string{"Salah", "Núñez", "Diaz"}},
	"4":  {ID: "4", Name: "Arsenal", Players: []string{"Saka", "Ødegaard", "Martinelli"}},
	"5":  {ID: "5", Name: "Man City", Players: []string{"Haaland", "De Bruyne", "Foden"}},
	"6":  {ID: "6", Name: "Spurs", Players: []string{"Son", "Maddison", "Kulusevski"}},
	"7":  {ID: "7", Name: "Real Madrid", Players: []string{"Bellingham", "Vini Jr.", "Rodrygo"}},
	"8":  {ID: "8", Name: "Barcelona", Players: []string{"Lewandowski", "Gündoğan", "Pedri"}},
	"9":  {ID: "9", Name: "Bayern", Players: []string{"Kane", "Musiala", "Kimmich"}},
	"10": {ID: "10", Name: "Dortmund", Players: []string{"Reus", "Brandt", "Hummels"}},
	"11": {ID: "11", Name: "Juventus", Players: []string{"Vlahović", "Chiesa", "Rabiot"}},
	"12": {ID: "12", Name: "AC Milan", Players: []string{"Leão", "Giroud", "Pulisic"}},
}

var defaultCompetitions = []Competition{
	{Key: "prem", Name: "Premier League"},
	{Key: "fa_cup", Name: "FA Cup"},
	{Key: "la_liga", Name: "La Liga"},
	{Key: "serie_a", Name: "Serie A"},
	{Key: "bundesliga", Name: "Bundesliga"},
}

var defaultFixtures = []struct{ id, competition, home, away string }{
	{"g1", "prem", "1", "6"},
	{"g2", "prem", "3", "4"},
	{"g3", "fa_cup", "5", "2"},
	{"g4", "la_liga", "7", "8"},
	{"g5", "serie_a", "11", "12"},
	{"g6", "bundesliga", "9", "10"},
	{"g7", "prem", "2", "3"},
	{"g8", "prem", "4", "5"},
	{"g9", "la_liga", "8", "10"},
	{"g10", "serie_a", "12", "9"},
}

// DefaultCatalog returns the built-in competitions and fixtures.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, comp := range defaultCompetitions {
		c.AddCompetition(comp)
	}
	for _, f := range defaultFixtures {
		c.Register(Match{
			ID:          f.id,
			Competition: f.competition,
			Home:        cloneTeam(defaultTeams[f.home]),
			Away:        cloneTeam(defaultTeams[f.away]),
		})
	}
	return c
}

func cloneTeam(t Team) Team {
	t.Players = append([]string(nil), t.Players...)
	return t
}
