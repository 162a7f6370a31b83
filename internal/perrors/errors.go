// Package perrors adapts small error-aggregation helpers used to report
// problems encountered while normalizing requests (table Arguments) without
// aborting the whole operation.
package perrors

// Flatten converts errs into a slice of problem strings suitable for a
// response's Problems field, preserving order and skipping nil entries so a
// caller can build errs with conditional appends/ternary-style helpers
// without every validation path needing its own nil check.
func Flatten(errs ...error) []string {
	if len(errs) == 0 {
		return nil
	}
	strs := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		strs = append(strs, err.Error())
	}
	return strs
}
