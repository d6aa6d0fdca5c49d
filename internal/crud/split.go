package crud

// CheckSplit validates that split amounts never exceed the declared total.
// Zero or partial allocation is legal; duplicate references are summed.
func CheckSplit(total int64, splits []int64) error {
	var sum int64
	for _, amount := range splits {
		sum += amount
	}
	if sum > total {
		return &NegativeRemainingTotalError{Total: total, Sum: sum}
	}
	return nil
}
