package match

// Type tags how a search result matched the query.
type Type string

// Match type constants, strongest text match first.
const (
	Exact     Type = "exact"
	Prefix    Type = "prefix"
	WordStart Type = "word-start"
	Partial   Type = "partial"
	Fuzzy     Type = "fuzzy"
	// Intent marks an item that passed structured filters without a text tier match.
	Intent Type = "intent"
)

// IsValid checks if the match type is one of the supported values.
func (t Type) IsValid() bool {
	switch t {
	case Exact, Prefix, WordStart, Partial, Fuzzy, Intent:
		return true
	}
	return false
}
