package data

import (
	"embed"
)

// CatalogFS carries the seed word catalog. Each catalog/<key>.json file is a
// JSON array of words; the filename is the canonical category key.
//
//go:embed catalog
var CatalogFS embed.FS

// CatalogDir is the directory inside CatalogFS holding the word lists.
const CatalogDir = "catalog"
