package nutrition

// DefaultTolerance is the fraction applied symmetrically around each target
// field when a customization does not specify its own.
const DefaultTolerance = 0.2

// CheckTarget reports whether every target field is matched by the profile
// within the tolerance band [target*(1-t), target*(1+t)], inclusive at both
// ends. Target fields left empty are not compared. A profile missing a
// targeted field fails the check. A parse failure on either side is returned
// so a sole-subject caller can surface it.
func CheckTarget(profile, target Profile, tolerance float64) (bool, error) {
	targetFields := target.Fields()
	profileFields := profile.Fields()

	for i, tf := range targetFields {
		if tf.Value == "" {
			continue
		}
		want, err := ParseValue(tf.Value)
		if err != nil {
			return false, err
		}

		pf := profileFields[i]
		if pf.Value == "" {
			return false, nil
		}
		got, err := ParseValue(pf.Value)
		if err != nil {
			return false, err
		}

		low := want * (1 - tolerance)
		high := want * (1 + tolerance)
		if got < low || got > high {
			return false, nil
		}
	}
	return true, nil
}

// WithinTarget is CheckTarget with parse failures treated as a miss, for
// batch filtering where one bad record must not fail the whole operation.
func WithinTarget(profile, target Profile, tolerance float64) bool {
	ok, err := CheckTarget(profile, target, tolerance)
	return err == nil && ok
}
