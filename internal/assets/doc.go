// Package assets provides the HTML templates and CSS styles that make up the
// injected page snippets.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in snippets compiled into the binary
//	    ├── FilesystemLoader  - overrides read from a directory on disk
//	    └── AssetResolver     - custom first, embedded on not-found
//
// An override directory only needs the files it changes. Everything else
// falls back to the embedded copy.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css      # e.g. breadcrumb.css, mobile.css
//	└── templates/
//	    └── {name}.html     # text/template source, e.g. toc.html
//
// Asset names never contain separators or dots, and the filesystem loader
// refuses paths that resolve outside basePath.
package assets
