package pass

import "sort"

// Finalize removes duplicate pass requests and orders the result the way the
// render buffer lays them out.
//
// Passes whose kind cannot be denoised, or all passes when useDenoise is
// false, are switched to Noisy mode. A request merges into an earlier one of
// the same kind and mode unless both carry different non-empty names; the
// surviving entry inherits a name from the merged one and stays auto only if
// both were auto. The result is stably sorted by component count
// (descending) and kind (ascending) so repeated cryptomatte and AOV passes
// keep the order they were requested in.
func Finalize(passes []*Pass, useDenoise bool) []*Pass {
	out := make([]*Pass, 0, len(passes))

	for _, p := range passes {
		if !useDenoise || !p.Info().SupportDenoise {
			p.Mode = Noisy
		}

		if target := findMergeTarget(out, p); target != nil {
			if target.Name == "" {
				target.Name = p.Name
			}
			target.auto = target.auto && p.auto
			continue
		}

		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})

	return out
}

func findMergeTarget(passes []*Pass, p *Pass) *Pass {
	for _, candidate := range passes {
		if candidate.Kind != p.Kind || candidate.Mode != p.Mode {
			continue
		}
		if p.Name != "" && candidate.Name != "" && p.Name != candidate.Name {
			continue
		}
		return candidate
	}
	return nil
}

func less(a, b *Pass) bool {
	na, nb := a.Info().NumComponents, b.Info().NumComponents
	if na == nb {
		return a.Kind < b.Kind
	}
	return na > nb
}
