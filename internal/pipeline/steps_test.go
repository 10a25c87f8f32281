package pipeline

import (
	"strings"
	"testing"
)

func applyOne(t *testing.T, s Step, src string) (string, Edit) {
	t.Helper()
	out, edit, err := s.Apply(src)
	if err != nil {
		t.Fatalf("%s.Apply() error = %v", s.Name(), err)
	}
	if edit.Outcome != Applied && out != src {
		t.Fatalf("%s changed the page with outcome %v", s.Name(), edit.Outcome)
	}
	return out, edit
}

// ----- TestSplice - marker, anchors and fallbacks -----

func TestSplice_Fallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		step       Step
		src        string
		want       string
		wantAnchor string
		outcome    Outcome
	}{
		{
			name:       "reading time falls back to hero end",
			step:       ReadingTime(fragReading),
			src:        `<div class="hero"><div>x</div></div><main></main>`,
			want:       `<div class="hero"><div>x</div></div>` + "\n" + fragReading + `<main></main>`,
			wantAnchor: "</div.hero>",
			outcome:    Applied,
		},
		{
			name:    "marker present",
			step:    ReadingTime(fragReading),
			src:     `<div class="reading-time">old</div><div class="content-wrapper"></div>`,
			outcome: AlreadyPresent,
		},
		{
			name:    "no anchor leaves page alone",
			step:    Breadcrumb(fragBreadcrumb),
			src:     `<body><main></main></body>`,
			outcome: NoAnchor,
		},
		{
			name:       "share buttons after feedback section",
			step:       ShareButtons(fragShare),
			src:        `<div class="feedback-section"><div>a</div></div><p>`,
			want:       `<div class="feedback-section"><div>a</div></div>` + "\n" + fragShare + `<p>`,
			wantAnchor: "</div.feedback-section>",
			outcome:    Applied,
		},
		{
			name:       "mobile css opens a stylesheet when none exists",
			step:       MobileCSS(fragMobileCSS),
			src:        "<head><title>t</title></head><body></body>",
			want:       "<head><title>t</title><style>\n" + fragMobileCSS + "\n</style>\n</head><body></body>",
			wantAnchor: "</head>",
			outcome:    Applied,
		},
		{
			name:    "mobile css without head or style",
			step:    MobileCSS(fragMobileCSS),
			src:     "<body></body>",
			outcome: NoAnchor,
		},
		{
			name:       "progress bar after body with attributes",
			step:       ProgressBar(fragProgress),
			src:        `<body class="dark"><main></main></body>`,
			want:       `<body class="dark">` + "\n" + fragProgress + `<main></main></body>`,
			wantAnchor: "<body>",
			outcome:    Applied,
		},
		{
			name:       "script falls back to body end",
			step:       MobileScript(fragScript),
			src:        "<body><p>x</p></body>",
			want:       "<body><p>x</p>" + fragScript + "\n</body>",
			wantAnchor: "</body>",
			outcome:    Applied,
		},
		{
			name:       "script goes before the button",
			step:       MobileScript(fragScript),
			src:        "<body>" + fragBackToTop + "</body>",
			want:       "<body>" + fragScript + "\n" + fragBackToTop + "</body>",
			wantAnchor: "<button.back-to-top>",
			outcome:    Applied,
		},
		{
			name:    "empty related fragment is not applicable",
			step:    RelatedArticles(""),
			src:     `<article><div class="next-read"><div>n</div></div></article>`,
			outcome: NotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, edit := applyOne(t, tt.step, tt.src)
			if edit.Outcome != tt.outcome {
				t.Fatalf("outcome = %v, want %v", edit.Outcome, tt.outcome)
			}
			if tt.outcome != Applied {
				return
			}
			if got != tt.want {
				t.Errorf("got\n%q\nwant\n%q", got, tt.want)
			}
			if edit.Anchor != tt.wantAnchor {
				t.Errorf("anchor = %q, want %q", edit.Anchor, tt.wantAnchor)
			}
		})
	}
}

func TestSplice_KeepsCRLF(t *testing.T) {
	t.Parallel()

	src := "<html>\r\n<head>\r\n<title>t</title>\r\n</head>\r\n<body>\r\n<p>x</p>\r\n</body>\r\n</html>\r\n"
	out, _, err := runSteps(src,
		MobileCSS(fragMobileCSS), ProgressBar(fragProgress),
		BackToTop(fragBackToTop), MobileScript(fragScript),
	)
	if err != nil {
		t.Fatal(err)
	}
	if out == src {
		t.Fatal("nothing was inserted")
	}
	if bare := strings.Count(out, "\n") - strings.Count(out, "\r\n"); bare != 0 {
		t.Errorf("%d bare LF line endings in CRLF page:\n%q", bare, out)
	}

	lf, _, err := runSteps(strings.ReplaceAll(src, "\r\n", "\n"), ProgressBar(fragProgress))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(lf, "\r") {
		t.Errorf("LF page gained CR: %q", lf)
	}
}

func TestRelatedArticles_RemovesNextRead(t *testing.T) {
	t.Parallel()

	src := "<article>\n  <p>x</p>\n  <div class=\"next-read\">\n    <div><a href=\"../a/\">a</a></div>\n  </div>\n  </article>"
	got, edit := applyOne(t, RelatedArticles(fragRelated), src)
	if edit.Outcome != Applied {
		t.Fatalf("outcome = %v", edit.Outcome)
	}

	want := "<article>\n  <p>x</p>\n  " + fragRelated + "\n</article>"
	if got != want {
		t.Errorf("got\n%q\nwant\n%q", got, want)
	}
}

func TestRelatedArticles_IgnoresScriptText(t *testing.T) {
	t.Parallel()

	src := "<article><p>x</p><script>var s = '</article>';</script></article>"
	got, _ := applyOne(t, RelatedArticles(fragRelated), src)

	if !strings.HasSuffix(got, fragRelated+"\n</article>") {
		t.Errorf("inserted at the wrong </article>: %q", got)
	}
}

// ----- TestAnalytics - exactly one tag -----

func TestAnalytics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		outcome Outcome
		anchor  string
	}{
		{"placeholder", "<body><!-- Analytics --></body>", Applied, "analytics placeholder"},
		{"lowercase placeholder with text", "<body><!--  analytics: goes here --></body>", Applied, "analytics placeholder"},
		{"two placeholders", "<body><!-- Analytics placeholder --><p></p><!-- analytics --></body>", Applied, "analytics placeholder"},
		{"no placeholder", "<body><p>x</p></body>", Applied, "</body>"},
		{"neither", "<p>fragment only</p>", NoAnchor, ""},
		{"already tagged", "<body>" + fragAnalytics + "</body>", AlreadyPresent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, edit := applyOne(t, Analytics(fragAnalytics), tt.src)
			if edit.Outcome != tt.outcome {
				t.Fatalf("outcome = %v, want %v", edit.Outcome, tt.outcome)
			}
			if edit.Anchor != tt.anchor {
				t.Errorf("anchor = %q, want %q", edit.Anchor, tt.anchor)
			}
			if tt.outcome == NoAnchor {
				return
			}
			if n := strings.Count(got, "data-goatcounter="); n != 1 {
				t.Errorf("tag count = %d, want 1", n)
			}

			again, edit := applyOne(t, Analytics(fragAnalytics), got)
			if edit.Outcome != AlreadyPresent || again != got {
				t.Errorf("second apply outcome = %v", edit.Outcome)
			}
		})
	}
}

func TestAnalytics_PlaceholderReplacedInPlace(t *testing.T) {
	t.Parallel()

	src := "<body><header><!-- Analytics --></header></body>"
	got, _ := applyOne(t, Analytics(fragAnalytics), src)

	want := "<body><header>" + fragAnalytics + "</header></body>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// ----- TestTOC - placement -----

func TestTOC_Placement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		anchor string
		before string
	}{
		{
			name:   "after article header",
			src:    `<article><div class="article-header"><dl></dl></div><h2 id="sec-1">A</h2></article>`,
			anchor: "</div.article-header>",
			before: `<h2 id="sec-1">`,
		},
		{
			name:   "after dl header pattern",
			src:    "<article><div class=\"meta\"><dl></dl>\n</div>\n<hr>\n<h2 id=\"sec-1\">A</h2></article>",
			anchor: "article header pattern",
			before: "<hr>",
		},
		{
			name:   "before first heading",
			src:    `<article><p>intro</p><h2 id="sec-1">A</h2></article>`,
			anchor: "first article <h2>",
			before: `<h2 id="sec-1">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, edit := applyOne(t, TOC(renderTOC), tt.src)
			if edit.Outcome != Applied {
				t.Fatalf("outcome = %v", edit.Outcome)
			}
			if edit.Anchor != tt.anchor {
				t.Errorf("anchor = %q, want %q", edit.Anchor, tt.anchor)
			}
			if strings.Index(got, `<div class="toc">`) > strings.Index(got, tt.before) {
				t.Errorf("TOC not before %q: %s", tt.before, got)
			}
		})
	}
}

func TestTOC_NoHeadings(t *testing.T) {
	t.Parallel()

	src := `<article><div class="article-header"></div><p>x</p></article>`
	got, edit := applyOne(t, TOC(renderTOC), src)
	if edit.Outcome != NotApplicable || got != src {
		t.Errorf("outcome = %v, want not applicable", edit.Outcome)
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{".toc { color: red; }", ".toc { color: red; }"},
		{"</style>", `<\/style>`},
		{"</</style>", `<\/<\/style>`},
	}
	for _, tt := range tests {
		if got := sanitizeCSS(tt.in); got != tt.want {
			t.Errorf("sanitizeCSS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
