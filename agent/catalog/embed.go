package catalog

import _ "embed"

//go:embed data/catalog.json
var defaultCatalogRaw []byte
