package competition

const defaultSeason = "2024-2025"

// DefaultSources is the built-in catalog used when no competitions file is configured.
func DefaultSources() []Source {
	return []Source{
		{URL: "https://www.soccerstats.com/latest.asp?league=greece", Name: "Super League", Country: "Greece", Season: defaultSeason},
		{URL: "https://www.soccerstats.com/latest.asp?league=england", Name: "Premier League", Country: "England", Season: defaultSeason},
		{URL: "https://www.soccerstats.com/latest.asp?league=spain", Name: "La Liga", Country: "Spain", Season: defaultSeason},
		{URL: "https://www.soccerstats.com/latest.asp?league=italy", Name: "Serie A", Country: "Italy", Season: defaultSeason},
		{URL: "https://www.soccerstats.com/latest.asp?league=germany", Name: "Bundesliga", Country: "Germany", Season: defaultSeason},
	}
}
