// Package schemas хранит JSON-схемы значений клиентского хранилища.
package schemas

import "embed"

// StorageFS - схемы вида storage/<ключ-через-дефис>/v<N>.json
//
//go:embed storage
var StorageFS embed.FS
