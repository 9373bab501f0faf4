package expr

// StaticStageIDs extracts the stage ids that appear as a bare list
// literal at the root of a preceding_stage expression, for static cycle
// detection at config load time (§4.1). Ids guarded behind a
// conditional (iff/cond) are *not* visible here — §4.1: "ignoring those
// guarded behind conditionals — the latter are checked at runtime" — so
// a root-level iff/cond call yields no static ids at all, even though
// both of its branches might themselves be list literals.
func StaticStageIDs(node Node) []string {
	list, ok := node.(*List)
	if !ok {
		return nil
	}

	ids := make([]string, 0, len(list.Elements))
	for _, el := range list.Elements {
		switch lit := el.(type) {
		case *Literal:
			switch lit.Kind {
			case "string":
				ids = append(ids, lit.Str)
			case "int":
				ids = append(ids, numberToStageID(float64(lit.Int)))
			case "float":
				ids = append(ids, numberToStageID(lit.Float))
			}
		}
	}
	return ids
}
