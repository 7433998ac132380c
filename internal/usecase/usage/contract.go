package usage

import domusage "github.com/kailas-cloud/cinedex/internal/domain/usage"

// BudgetReader provides read-only access to token budget state.
type BudgetReader interface {
	Counters() domusage.Counters
}
