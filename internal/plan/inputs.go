package plan

// checkInputs classifies input tags as local or external, then looks for
// local reads of products that are not declared or are made too late.
func (r *resolver) checkInputs() {
	modules := r.plan.Modules
	if r.plan.Source != nil {
		modules = append([]*Module{r.plan.Source}, modules...)
	}

	for _, m := range modules {
		for _, in := range m.Inputs {
			producer, ok := r.bound[in.Tag.Label]
			if !ok || r.labels[in.Tag.Label].kind != declModule {
				continue
			}
			if in.Tag.Process != "" && in.Tag.Process != r.process {
				continue
			}
			in.Local = true

			mt, ok := r.reg.Lookup(producer.Type)
			if ok && !mt.HasProduct(in.Tag.Instance) {
				r.warn(WarnUnknownProduct, m.Label, r.inputRanges[in],
					"Parameter '%s' of '%s' reads '%s', but type '%s' declares no product with instance '%s'.",
					in.Param, m.Label, in.Tag, mt.Name, in.Tag.Instance)
			}
		}
	}

	for _, path := range r.plan.Paths {
		pos := make(map[string]int, len(path.Steps))
		for _, s := range path.Steps {
			pos[s.Label] = s.Position
		}
		for _, s := range path.Steps {
			m, ok := r.bound[s.Label]
			if !ok {
				continue
			}
			for _, in := range m.Inputs {
				if !in.Local {
					continue
				}
				if at, ok := pos[in.Tag.Label]; ok && at > s.Position {
					r.warn(WarnProducerLater, s.Label, r.inputRanges[in],
						"Module '%s' reads '%s', which runs later on path '%s' (position %d after %d).",
						s.Label, in.Tag, path.Name, at, s.Position)
				}
			}
		}
	}
}

// checkUnused warns about modules that no scheduled path runs.
func (r *resolver) checkUnused() {
	onPath := make(map[string]bool)
	for _, p := range r.plan.AllPaths() {
		for _, s := range p.Steps {
			onPath[s.Label] = true
		}
	}
	consumed := make(map[string]bool)
	for _, m := range r.plan.Modules {
		for _, in := range m.Inputs {
			if in.Local {
				consumed[in.Tag.Label] = true
			}
		}
	}

	for _, m := range r.plan.Modules {
		if onPath[m.Label] {
			continue
		}
		rng := r.labels[m.Label].rng
		if consumed[m.Label] {
			r.warn(WarnNotOnPath, m.Label, rng,
				"Module '%s' is not on any scheduled path; it only runs when another module reads its products.", m.Label)
			continue
		}
		r.warn(WarnNotOnPath, m.Label, rng,
			"Module '%s' is not on any scheduled path and will never run.", m.Label)
	}
}
