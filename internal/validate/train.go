package validate

// TrainForm is the train create/update input. TotalSeats arrives already
// normalized from text via IntOr, so a non-numeric entry carries the
// fallback 0 here and fails the minimum-seats rule.
type TrainForm struct {
	TrainNumber string
	TotalSeats  int
}

// Validate checks the train schema.
func (f TrainForm) Validate() (TrainForm, Issues) {
	var issues Issues
	switch {
	case f.TrainNumber == "":
		issues.add("Train number is required", Field("trainNumber"))
	case trimmedLen(f.TrainNumber) < 3:
		issues.add("Train number must be at least 3 characters", Field("trainNumber"))
	}
	if f.TotalSeats < 1 {
		issues.add("Total seats must be at least 1", Field("totalSeats"))
	}
	return f, issues
}
