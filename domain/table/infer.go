package table

// Thresholds for separating categorical columns from free text
const (
	MaxCategoricalUnique = 20
	MaxCategoricalRatio  = 0.5
)

// InferType classifies raw cells. A column is numeric when it has at least
// one present cell and every present cell parses as a number. Otherwise it is
// categorical when it has few distinct values, and text when it does not.
func InferType(values []string) ValueType {
	present := 0
	numeric := true
	unique := make(map[string]struct{})

	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		present++
		if numeric {
			if _, ok := ParseNumber(v); !ok {
				numeric = false
			}
		}
		if len(unique) <= MaxCategoricalUnique {
			unique[v] = struct{}{}
		}
	}

	if present == 0 {
		return TypeText
	}
	if numeric {
		return TypeNumeric
	}

	ratio := float64(len(unique)) / float64(present)
	if len(unique) <= MaxCategoricalUnique && ratio <= MaxCategoricalRatio {
		return TypeCategorical
	}
	return TypeText
}
