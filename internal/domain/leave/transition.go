package leave

// BalanceEffect is what a status change does to the leave balance.
type BalanceEffect int

const (
	EffectNone    BalanceEffect = iota
	EffectDeduct                // charge leave_days
	EffectRestore               // refund deducted_days
)

type transition struct {
	from, to Status
}

// transitions lists every status change that moves the balance. Anything not
// listed, including repeating the current status, leaves it untouched.
var transitions = map[transition]BalanceEffect{
	{StatusPending, StatusApproved}:   EffectDeduct,
	{StatusRejected, StatusApproved}:  EffectDeduct,
	{StatusCancelled, StatusApproved}: EffectDeduct,
	{StatusApproved, StatusRejected}:  EffectRestore,
	{StatusApproved, StatusCancelled}: EffectRestore,
}

// EffectOf returns the balance effect of moving from prev to next.
func EffectOf(prev, next Status) BalanceEffect {
	return transitions[transition{prev, next}]
}

// BalanceDelta returns the change to used_leaves for moving r to next, and
// the new deducted_days to store on r.
func BalanceDelta(r LeaveRequest, next Status) (delta, deducted int) {
	switch EffectOf(r.Status, next) {
	case EffectDeduct:
		return r.LeaveDays, r.LeaveDays
	case EffectRestore:
		return -r.DeductedDays, 0
	default:
		return 0, r.DeductedDays
	}
}

// CanTransition reports whether a leave may move from prev to next. A
// decided leave never returns to PENDING; every other move is allowed and
// settles the balance through EffectOf.
func CanTransition(prev, next Status) bool {
	if !next.IsValid() || next == StatusPending {
		return prev == next
	}
	return true
}
