package rank

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/cinedex/internal/domain/content"
	"github.com/kailas-cloud/cinedex/internal/domain/search/intent"
	"github.com/kailas-cloud/cinedex/internal/domain/search/match"
)

func item(id, title string, typ content.Type, ind content.Industry, genres ...string) content.Item {
	return content.Item{
		ID:       id,
		Title:    title,
		Type:     typ,
		Industry: ind,
		Genres:   genres,
	}
}

func ids(t *testing.T, items []content.Item, query string) []string {
	t.Helper()
	res := Search(items, query)
	out := make([]string, len(res))
	for i, r := range res {
		out[i] = r.ID()
	}
	return out
}

func TestSearch_EmptyQuery(t *testing.T) {
	items := []content.Item{item("1", "Inception", content.Movie, content.Hollywood)}
	for _, q := range []string{"", "   ", "\t"} {
		res := Search(items, q)
		if res == nil {
			t.Fatalf("Search(%q) returned nil, want empty slice", q)
		}
		if len(res) != 0 {
			t.Errorf("Search(%q): got %d results", q, len(res))
		}
	}
}

func TestSearch_GenreFilter(t *testing.T) {
	items := []content.Item{
		item("a", "The Conjuring", content.Movie, content.Hollywood, "Horror"),
		item("b", "Inception", content.Movie, content.Hollywood, "Sci-Fi"),
		item("c", "Stree", content.Movie, content.Bollywood, "Comedy", "horror"),
	}
	got := ids(t, items, "horror")
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	for _, r := range Search(items, "horror") {
		if r.MatchType() != match.Intent {
			t.Errorf("%s: match type %q, want intent", r.ID(), r.MatchType())
		}
		if r.Score() != IntentScore {
			t.Errorf("%s: score %v, want %v", r.ID(), r.Score(), IntentScore)
		}
	}
}

func TestSearch_ExactBeatsPrefix(t *testing.T) {
	items := []content.Item{
		item("sequel", "Inception 2", content.Movie, content.Hollywood),
		item("orig", "Inception", content.Movie, content.Hollywood),
	}
	res := Search(items, "inception")
	if len(res) != 2 {
		t.Fatalf("got %d results, want 2", len(res))
	}
	if res[0].ID() != "orig" || res[0].MatchType() != match.Exact || res[0].Score() != ExactScore {
		t.Errorf("first: %s %s %v", res[0].ID(), res[0].MatchType(), res[0].Score())
	}
	if res[1].ID() != "sequel" || res[1].MatchType() != match.Prefix || res[1].Score() != PrefixScore {
		t.Errorf("second: %s %s %v", res[1].ID(), res[1].MatchType(), res[1].Score())
	}
}

func TestSearch_TextTiers(t *testing.T) {
	items := []content.Item{
		item("1", "The Dark Knight", content.Movie, content.Hollywood),
		item("2", "Inception", content.Movie, content.Hollywood),
	}
	tests := []struct {
		query string
		id    string
		mt    match.Type
		score float64
	}{
		{"knight", "1", match.WordStart, WordStartScore},
		{"ception", "2", match.Partial, PartialScore},
		{"the dark", "1", match.Prefix, PrefixScore},
		{"incep", "2", match.Prefix, PrefixScore},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			res := Search(items, tc.query)
			if len(res) != 1 {
				t.Fatalf("got %d results, want 1", len(res))
			}
			r := res[0]
			if r.ID() != tc.id || r.MatchType() != tc.mt || r.Score() != tc.score {
				t.Errorf("got (%s, %s, %v), want (%s, %s, %v)",
					r.ID(), r.MatchType(), r.Score(), tc.id, tc.mt, tc.score)
			}
		})
	}
}

func TestSearch_SingleCharPrefixTaggedFuzzy(t *testing.T) {
	items := []content.Item{item("1", "Inception", content.Movie, content.Hollywood)}
	res := Search(items, "i")
	if len(res) != 1 {
		t.Fatalf("got %d results, want 1", len(res))
	}
	if res[0].MatchType() != match.Fuzzy || res[0].Score() != PrefixScore {
		t.Errorf("got %s %v", res[0].MatchType(), res[0].Score())
	}
}

func TestSearch_Fuzzy(t *testing.T) {
	items := []content.Item{item("1", "Interstellar", content.Movie, content.Hollywood)}

	res := Search(items, "intrstellar")
	if len(res) != 1 {
		t.Fatalf("got %d results, want 1", len(res))
	}
	if res[0].MatchType() != match.Fuzzy {
		t.Errorf("match type %q, want fuzzy", res[0].MatchType())
	}
	if res[0].Score() <= FuzzyWeight*FuzzyThreshold || res[0].Score() > FuzzyWeight {
		t.Errorf("score %v out of fuzzy range", res[0].Score())
	}

	if res := Search(items, "xyz"); len(res) != 0 {
		t.Errorf("xyz: got %d results, want 0", len(res))
	}
}

func TestSearch_PunctuationIgnored(t *testing.T) {
	items := []content.Item{item("1", "Spider-Man: Homecoming", content.Movie, content.Hollywood)}
	res := Search(items, "Spider-Man")
	if len(res) != 1 || res[0].MatchType() != match.Prefix {
		t.Fatalf("got %+v", res)
	}
}

func TestSearch_PureIntentNudge(t *testing.T) {
	older := item("older", "Naruto", content.Cartoon, content.Anime)
	older.ReleaseYear = 2015
	newer := item("newer", "Jujutsu Kaisen", content.Cartoon, content.Anime)
	newer.ReleaseYear = 2020
	newer.Views = 5000
	film := item("film", "Your Name", content.Movie, content.Anime)

	res := Search([]content.Item{older, film, newer}, "anime")
	if len(res) != 2 {
		t.Fatalf("got %d results, want 2", len(res))
	}
	if res[0].ID() != "newer" || res[0].Score() != IntentScore+5+20 {
		t.Errorf("first: %s %v", res[0].ID(), res[0].Score())
	}
	if res[1].ID() != "older" || res[1].Score() != IntentScore+15 {
		t.Errorf("second: %s %v", res[1].ID(), res[1].Score())
	}
}

func TestSearch_IntentWithText(t *testing.T) {
	items := []content.Item{
		item("drama", "Batman", content.Movie, content.Hollywood, "Drama"),
		item("action", "Batman Begins", content.Movie, content.Hollywood, "Action"),
	}
	res := Search(items, "batman action")
	if len(res) != 1 {
		t.Fatalf("got %d results, want 1", len(res))
	}
	if res[0].ID() != "action" || res[0].Score() != IntentScore+PrefixScore || res[0].MatchType() != match.Prefix {
		t.Errorf("got %s %v %s", res[0].ID(), res[0].Score(), res[0].MatchType())
	}
}

func TestSearch_IntentWithUnmatchedTextKeepsIntentTag(t *testing.T) {
	items := []content.Item{item("1", "The Conjuring", content.Movie, content.Hollywood, "Horror")}
	res := Search(items, "xyz horror")
	if len(res) != 1 {
		t.Fatalf("got %d results, want 1", len(res))
	}
	if res[0].MatchType() != match.Intent || res[0].Score() != IntentScore {
		t.Errorf("got %s %v", res[0].MatchType(), res[0].Score())
	}
}

func TestSearch_LanguageFallback(t *testing.T) {
	animeNoLang := item("anime", "Naruto", content.Cartoon, content.Anime)
	animeTelugu := item("telugu", "Dubbed Naruto", content.Cartoon, content.Anime)
	animeTelugu.Language = "Telugu"
	hwNoLang := item("hw", "Inception", content.Movie, content.Hollywood)
	hwHindi := item("hw-hindi", "Avatar", content.Movie, content.Hollywood)
	hwHindi.Language = "Hindi"
	otherNoLang := item("other", "Parasite", content.Movie, content.Other)
	items := []content.Item{animeNoLang, animeTelugu, hwNoLang, hwHindi, otherNoLang}

	tests := []struct {
		query string
		want  []string
	}{
		{"japanese", []string{"anime", "telugu"}},
		{"english", []string{"hw", "hw-hindi"}},
		{"TELUGU", []string{"telugu"}},
		{"hindi", []string{"hw-hindi"}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			if got := ids(t, items, tc.query); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSearch_SciFiTolerance(t *testing.T) {
	items := []content.Item{
		item("sf", "Arrival", content.Movie, content.Hollywood, "Science Fiction"),
		item("dr", "Moonlight", content.Movie, content.Hollywood, "Drama"),
	}
	for _, q := range []string{"sci-fi", "scifi", "science fiction"} {
		if got := ids(t, items, q); !reflect.DeepEqual(got, []string{"sf"}) {
			t.Errorf("%s: got %v", q, got)
		}
	}
}

func TestSearch_StableTies(t *testing.T) {
	items := []content.Item{
		item("x", "Horror One", content.Movie, content.Hollywood, "Horror"),
		item("y", "Horror Two", content.Movie, content.Hollywood, "Horror"),
		item("z", "Horror Three", content.Movie, content.Hollywood, "Horror"),
	}
	if got := ids(t, items, "horror"); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Errorf("got %v", got)
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	items := []content.Item{
		item("1", "Inception", content.Movie, content.Hollywood, "Sci-Fi"),
		item("2", "Stree", content.Movie, content.Bollywood, "Horror", "Comedy"),
	}
	before := make([]content.Item, len(items))
	for i := range items {
		before[i] = items[i].Clone()
	}
	Search(items, "hindi horror")
	Search(items, "inception")
	if !reflect.DeepEqual(items, before) {
		t.Error("input items were modified")
	}
}

func TestSearch_SortedDescending(t *testing.T) {
	items := []content.Item{
		item("p", "Dark", content.Series, content.Other),
		item("w", "The Dark Knight", content.Movie, content.Hollywood),
		item("e", "Dark Waters", content.Movie, content.Hollywood),
	}
	res := Search(items, "dark")
	for i := 1; i < len(res); i++ {
		if res[i-1].Score() < res[i].Score() {
			t.Fatalf("results not sorted at %d: %v < %v", i, res[i-1].Score(), res[i].Score())
		}
	}
	if len(res) != 3 || res[0].ID() != "p" {
		t.Errorf("unexpected order: %+v", res)
	}
}

func TestMatches_AllFiltersConjunctive(t *testing.T) {
	in := intent.Parse("hindi action movie")
	ok := item("ok", "War", content.Movie, content.Bollywood, "Action")
	ok.Language = "Hindi"
	wrongType := ok.Clone()
	wrongType.Type = content.Series
	wrongGenre := ok.Clone()
	wrongGenre.Genres = []string{"Drama"}
	wrongLang := ok.Clone()
	wrongLang.Language = "Tamil"

	if !Matches(&ok, &in) {
		t.Error("expected match")
	}
	for name, it := range map[string]content.Item{"type": wrongType, "genre": wrongGenre, "language": wrongLang} {
		if Matches(&it, &in) {
			t.Errorf("%s mismatch should be filtered", name)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Spider-Man!  ": "spiderman",
		"Amélie":          "amlie",
		"":                "",
		"Ocean's 11":      "oceans 11",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
