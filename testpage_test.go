package blogpatch

import (
	"os"
	"path/filepath"
	"testing"
)

// articlePage is a trimmed copy of a real article page.
const articlePage = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>トークン効率化</title>
<style>
  body { margin: 0; }
</style>
</head>
<body>
<div class="hero">
  <div class="hero-inner"><h1>トークン効率化</h1></div>
</div>

<div class="content-wrapper">
  <article>
    <div class="article-header">
      <dl><dt>日付</dt><dd>2026-02-01</dd></dl>
    </div>
    <h2>背景</h2>
    <p>本文</p>
    <h2>実装</h2>
    <pre><code class="language-go">fmt.Println("hi")</code></pre>
    <h2>結果</h2>
    <div class="feedback-section">
      <p>フィードバック</p>
    </div>
    <div class="next-read">
      <div><a href="../day1/">次へ</a></div>
    </div>
  </article>
</div>
<!-- Analytics -->
</body>
</html>
`

// homePage has no article and no analytics placeholder.
const homePage = `<!DOCTYPE html>
<html><head><style>body{}</style></head>
<body>
<ul><li><a href="token-efficiency/">トークン効率化</a></li></ul>
</body>
</html>
`

func writePage(t *testing.T, root, slug, content string) string {
	t.Helper()
	dir := filepath.Join(root, slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func newTestPatcher(t *testing.T, opts ...Option) *Patcher {
	t.Helper()
	p, err := NewPatcher(opts...)
	if err != nil {
		t.Fatalf("NewPatcher() error = %v", err)
	}
	return p
}
