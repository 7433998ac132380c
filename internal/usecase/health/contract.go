package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// AutofillChecker checks LLM provider availability.
type AutofillChecker interface {
	HealthCheck(ctx context.Context) error
}
