package masking

// Preview applies rules to every row and returns the masked copies in input
// order. Fields without a rule pass through unchanged and rules naming a field
// a row does not have are skipped for that row.
func Preview(rows []Row, rules Rules) ([]Row, error) {
	if err := rules.validate("preview_mask"); err != nil {
		return nil, err
	}

	out := make([]Row, len(rows))
	for i, row := range rows {
		masked := make(Row, len(row))
		for field, value := range row {
			if rule, ok := rules[field]; ok {
				value = maskers[rule](value)
			}
			masked[field] = value
		}
		out[i] = masked
	}
	return out, nil
}
