// Package schemas хранит JSON-схемы контрактов с апстримом.
package schemas

import "embed"

// BaseURL - общий префикс $id всех схем.
const BaseURL = "https://schemas.listing-admin.local/"

//go:embed listing/*.json listing-list/*.json interest-request/*.json
var SchemasFS embed.FS
