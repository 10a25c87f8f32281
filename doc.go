// Package blogpatch injects navigation, sharing, reading aids and analytics
// snippets into the hand-authored pages of a static blog.
//
// # Quick Start
//
//	p, err := blogpatch.NewPatcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	targets, err := p.Plan("/tmp/blog-work", blogpatch.AllJobs()...)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	results, err := p.Run(ctx, targets, nil)
//	fmt.Println(blogpatch.Summarize(results))
//
// # Idempotence
//
// Every feature has a marker. A page that already contains the marker is
// left alone by that feature, so running the tool twice is the same as
// running it once, and pages whose text does not change are never written.
//
// # Features and Jobs
//
// Features are applied in a fixed order (see Features). Jobs bundle
// features with the pages they apply to:
//
//   - features: breadcrumb, reading time, share buttons and related
//     articles on every catalog article
//   - mobile: TOC, progress bar, section numbers and back-to-top on a fixed
//     list of long-form pages and the home page
//   - analytics: the analytics tag on every index.html under the root
//
// Targets from several jobs are merged so each page is read and written
// once.
//
// # Configuration
//
//	p, err := blogpatch.NewPatcher(
//	    blogpatch.WithSite(blogpatch.Site{BaseURL: "https://example.org/blog/"}),
//	    blogpatch.WithAssetPath("/path/to/snippet/overrides"),
//	    blogpatch.WithHighlight("monokai"),
//	    blogpatch.WithDryRun(true),
//	)
package blogpatch
