package pipeline

// samplePage mirrors the shape of a hand-authored article page.
const samplePage = `<!DOCTYPE html>
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
  <div class="hero-inner">
    <h1>トークン効率化</h1>
  </div>
</div>

<div class="content-wrapper">
  <article class="post">
    <div class="article-header">
      <dl><dt>日付</dt><dd>2026-02-01</dd></dl>
    </div>
    <hr>
    <h2>背景</h2>
    <p>本文</p>
    <h2>実装 <code>v2</code></h2>
    <p>本文</p>
    <h2>結果</h2>
    <div class="feedback-section">
      <p>フィードバック</p>
    </div>
    <div class="next-read">
      <div class="next-read-inner"><a href="../day1/">次へ</a></div>
    </div>
  </article>
  <aside><h2>サイドバー</h2></aside>
</div>
<!-- Analytics placeholder -->
</body>
</html>
`
