package investment

import domainerrors "trivest/internal/errors"

// Service errors
var (
	ErrPlanNotFound = domainerrors.New(
		domainerrors.KindNotFound, "PLAN_NOT_FOUND", "plan not found")
	ErrInvestmentNotFound = domainerrors.New(
		domainerrors.KindNotFound, "INVESTMENT_NOT_FOUND", "investment not found")
	ErrActivePlanExists = domainerrors.New(
		domainerrors.KindConflict, "ACTIVE_PLAN_EXISTS", "account already holds an active investment")
	ErrPlanInactive = domainerrors.New(
		domainerrors.KindConflict, "PLAN_INACTIVE", "plan is not available for purchase")
)
