package dataset

// DistinctTypes parses the CSV file at path and collects the distinct
// Type values across all of its records. The set is built fresh from a
// fresh parse on every call; parser failures propagate unchanged.
func DistinctTypes(path string) (map[string]struct{}, error) {
	records, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{})
	for _, rec := range records {
		for _, t := range rec.Type {
			set[t] = struct{}{}
		}
	}
	return set, nil
}
