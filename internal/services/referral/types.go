package referral

import "trivest/internal/money"

// Commission rates per referral tier, in whole percent.
const (
	LevelARatePercent = 16
	LevelBRatePercent = 2
	LevelCRatePercent = 2
)

// Member is one downstream account with its lifetime settled
// recharge+withdraw activity.
type Member struct {
	Phone    string       `json:"phone"`
	Activity money.Amount `json:"activity"`
}

// Breakdown is the per-level commission computation for one account.
type Breakdown struct {
	LevelA []Member `json:"level_a"`
	LevelB []Member `json:"level_b"`
	LevelC []Member `json:"level_c"`

	LevelAIncome    money.Amount `json:"level_a_income"`
	LevelBIncome    money.Amount `json:"level_b_income"`
	LevelCIncome    money.Amount `json:"level_c_income"`
	TotalTeamIncome money.Amount `json:"total_team_income"`
}

// ApplyResult reports what an Apply call credited.
type ApplyResult struct {
	Breakdown Breakdown    `json:"breakdown"`
	Credited  money.Amount `json:"credited"`
}
