package contacts

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"rolodex/internal/domain"
)

func ptr(s string) *string { return &s }

func ids(cs []domain.Contact) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var book = []domain.Contact{
	{ID: "ana", First: "Ana", Last: "Jones", CreatedAt: t0},
	{ID: "anaj", First: "Anaja", Last: "Smith", CreatedAt: t0.Add(time.Second)},
	{ID: "dana", First: "Dana", Last: "Banana", CreatedAt: t0.Add(2 * time.Second)},
	{ID: "ryan", First: "Ryan", Last: "Florence", CreatedAt: t0.Add(3 * time.Second)},
	{ID: "blank", CreatedAt: t0.Add(4 * time.Second)},
	{ID: "kent", First: "Kent C.", Last: "Dodds", CreatedAt: t0.Add(5 * time.Second)},
}

func TestMatchWithoutQueryKeepsEverything(t *testing.T) {
	want := []string{"blank", "dana", "kent", "ryan", "ana", "anaj"}

	if diff := cmp.Diff(want, ids(Match(book, nil))); diff != "" {
		t.Errorf("nil query (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, ids(Match(book, ptr("")))); diff != "" {
		t.Errorf("empty query (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, ids(Match(book, ptr("   ")))); diff != "" {
		t.Errorf("blank query (-want +got):\n%s", diff)
	}
}

func TestMatchRanksAndFilters(t *testing.T) {
	got := ids(Match(book, ptr("ana")))
	// exact first name, then prefix, then substring matches
	want := []string{"ana", "anaj", "dana"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, []string{"ryan"}, ids(Match(book, ptr("FLOR"))))
}

func TestMatchFullName(t *testing.T) {
	assert.Equal(t, []string{"ana"}, ids(Match(book, ptr("ana jo"))))
}

func TestMatchCloseSpelling(t *testing.T) {
	// one edit away from "Florence"
	assert.Equal(t, []string{"ryan"}, ids(Match(book, ptr("florance"))))
	// short queries never match fuzzily
	assert.Empty(t, Match(book, ptr("xna")))
}

func TestMatchNoResults(t *testing.T) {
	got := Match(book, ptr("zzzz"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankContact(t *testing.T) {
	c := domain.Contact{First: "Kent C.", Last: "Dodds"}
	assert.Equal(t, Exact, RankContact(c, "dodds"))
	assert.Equal(t, Prefix, RankContact(c, "ken"))
	assert.Equal(t, WordPrefix, RankContact(c, "c."))
	assert.Equal(t, Contains, RankContact(c, "odd"))
	assert.Equal(t, CloseSpelling, RankContact(c, "dodda"))
	assert.Equal(t, NoMatch, RankContact(c, ""))
	assert.Equal(t, NoMatch, RankContact(domain.Contact{}, "anything"))
}
