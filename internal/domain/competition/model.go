package competition

import "strings"

// Source describes one competition page to scrape.
type Source struct {
	URL     string `yaml:"url"`
	Name    string `yaml:"name"`
	Country string `yaml:"country"`
	Season  string `yaml:"season"`
}

// Catalog is the ordered, read-only set of configured competitions.
// Iteration order is configuration order and is what downstream merges rely on.
type Catalog struct {
	sources []Source
}

func NewCatalog(sources []Source) Catalog {
	out := make([]Source, 0, len(sources))
	for _, src := range sources {
		src.URL = strings.TrimSpace(src.URL)
		src.Name = strings.TrimSpace(src.Name)
		src.Country = strings.TrimSpace(src.Country)
		src.Season = strings.TrimSpace(src.Season)
		out = append(out, src)
	}
	return Catalog{sources: out}
}

// All returns a copy of every configured source.
func (c Catalog) All() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

func (c Catalog) Len() int {
	return len(c.sources)
}

func (c Catalog) Names() []string {
	out := make([]string, 0, len(c.sources))
	for _, src := range c.sources {
		out = append(out, src.Name)
	}
	return out
}

// Select keeps configuration order and returns only sources whose name is listed.
// Names are matched exactly; unknown names are ignored.
func (c Catalog) Select(names []string) []Source {
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	out := make([]Source, 0, len(names))
	for _, src := range c.sources {
		if _, ok := wanted[src.Name]; ok {
			out = append(out, src)
		}
	}
	return out
}
