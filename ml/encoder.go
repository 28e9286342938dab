package ml

// RawFormInput holds the submitted value of each form field: typed text for
// measurements, the chosen option label for categorical fields. Absent keys
// are treated as empty.
type RawFormInput map[Field]string

// Encode validates raw and turns it into a FeatureVector.
//
// Every field is checked for completeness before any parsing happens, so an
// *IncompleteInputError lists all missing fields at once. Measurements are
// then parsed in schema order and the first one that is not a finite number
// yields a *NumericFormatError.
func Encode(raw RawFormInput) (FeatureVector, error) {
	var vector FeatureVector

	selections := make(map[Field]Selection, len(codeTables))
	var missing []Field
	for _, f := range featureOrder {
		table, categorical := codeTables[f]
		if !categorical {
			if isBlank(raw[f]) {
				missing = append(missing, f)
			}
			continue
		}
		sel := table.Resolve(raw[f])
		if !sel.IsSelected() {
			missing = append(missing, f)
			continue
		}
		selections[f] = sel
	}
	if len(missing) > 0 {
		return vector, &IncompleteInputError{Fields: missing}
	}

	for i, f := range featureOrder {
		if sel, ok := selections[f]; ok {
			code, _ := sel.Code()
			vector[i] = float64(code)
			continue
		}
		value, err := ParseMeasurement(raw[f])
		if err != nil {
			return FeatureVector{}, &NumericFormatError{Field: f, Value: raw[f], Err: err}
		}
		vector[i] = value
	}
	return vector, nil
}
