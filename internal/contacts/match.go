package contacts

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"rolodex/internal/domain"
)

// Rank orders how well a contact matches a query. Higher is better.
type Rank float64

const (
	NoMatch       Rank = 0
	CloseSpelling Rank = 0.5
	Contains      Rank = 1
	WordPrefix    Rank = 2
	Prefix        Rank = 3
	Exact         Rank = 4
)

// minFuzzyRunes is the shortest query considered for close-spelling matches
const minFuzzyRunes = 4

// RankContact scores c against a non-empty query, case-insensitively, over the
// first name, the last name and the full display name.
func RankContact(c domain.Contact, query string) Rank {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return NoMatch
	}

	full, _ := c.DisplayName()
	best := NoMatch
	for _, key := range []string{c.First, c.Last, full} {
		if r := rankKey(strings.ToLower(strings.TrimSpace(key)), q); r > best {
			best = r
		}
	}
	if best > NoMatch {
		return best
	}

	if utf8.RuneCountInString(q) >= minFuzzyRunes {
		for _, key := range []string{c.First, c.Last} {
			k := strings.ToLower(strings.TrimSpace(key))
			if k != "" && levenshtein.ComputeDistance(k, q) <= 1 {
				return CloseSpelling
			}
		}
	}
	return NoMatch
}

func rankKey(key, q string) Rank {
	switch {
	case key == "":
		return NoMatch
	case key == q:
		return Exact
	case strings.HasPrefix(key, q):
		return Prefix
	}
	for _, word := range strings.Fields(key) {
		if strings.HasPrefix(word, q) {
			return WordPrefix
		}
	}
	if strings.Contains(key, q) {
		return Contains
	}
	return NoMatch
}

// Match filters and orders all by query. A nil or empty query keeps every
// contact, ordered by last name then creation time.
func Match(all []domain.Contact, query *string) []domain.Contact {
	out := make([]domain.Contact, 0, len(all))
	if query == nil || strings.TrimSpace(*query) == "" {
		out = append(out, all...)
		sortByName(out)
		return out
	}

	ranks := make(map[string]Rank, len(all))
	for _, c := range all {
		if r := RankContact(c, *query); r > NoMatch {
			ranks[c.ID] = r
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := ranks[out[i].ID], ranks[out[j].ID]; ri != rj {
			return ri > rj
		}
		return lessByName(out[i], out[j])
	})
	return out
}

func sortByName(cs []domain.Contact) {
	sort.SliceStable(cs, func(i, j int) bool { return lessByName(cs[i], cs[j]) })
}

func lessByName(a, b domain.Contact) bool {
	if a.Last != b.Last {
		return a.Last < b.Last
	}
	return a.CreatedAt.Before(b.CreatedAt)
}
