package paramvalidation

// Unvalidated returns the names of request fields that carry no rules at
// all, neither from a validate tag nor from Rules() or ValueRules(). Names
// in exclude are ignored; both the declared name and the parameter key are
// accepted. Fields tagged validate:"-" count as intentionally unvalidated.
//
// Use in tests to catch forgotten fields:
//
//	assert.Empty(t, v.Unvalidated(&SignupRequest{}))
//	assert.Empty(t, v.Unvalidated(&SignupRequest{}, "nickname"))
//
// Discovery failures yield nil.
func Unvalidated(req any, exclude ...string) []string {
	d, err := Discover(req, nil)
	if err != nil {
		return nil
	}

	excl := make(map[string]bool, len(exclude))
	for _, e := range exclude {
		excl[e] = true
	}

	var missing []string
	for _, f := range d.Fields {
		if len(f.Rules) > 0 || excl[f.Name] || excl[f.Key] {
			continue
		}
		if f.Field.Tag.Get("validate") == "-" {
			continue
		}
		missing = append(missing, f.Name)
	}
	return missing
}
