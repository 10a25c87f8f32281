package blogpatch

import "context"

// Run patches targets one at a time, in order. visit, when non-nil, is
// called after each page. ctx is checked between pages; on cancellation
// the results so far are returned with ctx.Err().
func (p *Patcher) Run(ctx context.Context, targets []Target, visit func(Result)) ([]Result, error) {
	results := make([]Result, 0, len(targets))
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := p.PatchFile(ctx, t)
		results = append(results, r)
		if visit != nil {
			visit(r)
		}
	}
	return results, nil
}
