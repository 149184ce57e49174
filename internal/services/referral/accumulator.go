package referral

import (
	"trivest/internal/models"
	"trivest/internal/money"
)

// Accumulator decides how much of a freshly computed team total is
// credited by Apply. The historical engine re-sums all-time activity
// and credits the whole total on every call, which double-credits on
// repeated invocation; the checkpoint strategy credits only what the
// total has grown since the last Apply. The strategy is injected so
// callers never change when the product decision lands.
type Accumulator interface {
	Name() string
	CreditAmount(account *models.Account, computedTotal money.Amount) money.Amount
}

// Resumming reproduces the historical behavior: the full recomputed
// total is credited on every Apply.
type Resumming struct{}

func (Resumming) Name() string { return "resumming" }

func (Resumming) CreditAmount(_ *models.Account, computedTotal money.Amount) money.Amount {
	return computedTotal
}

// Checkpoint credits only the growth of the computed total beyond
// what the account has already earned in commission, making Apply
// idempotent while the team's activity is unchanged.
type Checkpoint struct{}

func (Checkpoint) Name() string { return "checkpoint" }

func (Checkpoint) CreditAmount(account *models.Account, computedTotal money.Amount) money.Amount {
	delta := computedTotal - account.TotalCommissionEarned
	if delta < 0 {
		return 0
	}
	return delta
}

// AccumulatorByName resolves a configured strategy name, defaulting
// to the historical resumming behavior.
func AccumulatorByName(name string) Accumulator {
	if name == "checkpoint" {
		return Checkpoint{}
	}
	return Resumming{}
}
