package routine

// XP reward constants.
const (
	baseStepXP      = 1
	onTimeStepXP    = 2
	perfectRunBonus = 2
	maxRoutineBonus = 4
)

// XPBreakdown aggregates the XP earned over one run.
type XPBreakdown struct {
	StepXP       int `json:"step_xp"`
	RoutineBonus int `json:"routine_bonus"`
	PerfectBonus int `json:"perfect_bonus"`
	Total        int `json:"total"`
}

// StepXP returns the reward for completing a single step: 1 for a late
// completion, 2 for an on-time one.
func StepXP(completedOnTime bool) int {
	if completedOnTime {
		return onTimeStepXP
	}
	return baseStepXP
}

// RoutineBonus returns the tiered reward for finishing a routine of the given
// size: 1-5 steps earn 2, 6-10 earn 3, 11-15 earn 4, and larger routines stay
// capped at 4. Non-positive sizes earn nothing.
func RoutineBonus(totalSteps int) int {
	if totalSteps <= 0 {
		return 0
	}
	bonus := 2 + (totalSteps-1)/5
	if bonus > maxRoutineBonus {
		bonus = maxRoutineBonus
	}
	return bonus
}

// PerfectBonus returns the flat reward for a run in which every completed
// step was on time. A run with no completions earns nothing.
func PerfectBonus(completed []*StepResult) int {
	if len(completed) == 0 {
		return 0
	}
	for _, result := range completed {
		if !result.CompletedOnTime {
			return 0
		}
	}
	return perfectRunBonus
}

// TotalXP sums the XP stored on each completed step and adds the routine and
// perfect bonuses. The routine bonus is computed from the routine's total
// step count, not from how many steps were actually completed.
func TotalXP(completed []*StepResult, totalSteps int) XPBreakdown {
	var stepXP int
	for _, result := range completed {
		stepXP += result.XP
	}
	routineBonus := RoutineBonus(totalSteps)
	perfectBonus := PerfectBonus(completed)
	return XPBreakdown{
		StepXP:       stepXP,
		RoutineBonus: routineBonus,
		PerfectBonus: perfectBonus,
		Total:        stepXP + routineBonus + perfectBonus,
	}
}
