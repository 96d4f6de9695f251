// Package builtin embeds the level pack shipped with the binary and
// registers it as the "builtin" pack.
package builtin

import (
	"embed"

	"github.com/vovakirdan/tui-sokoban/internal/registry"
)

// PackID is the registry ID of the embedded pack.
const PackID = "builtin"

//go:embed *.xsb
var files embed.FS

func init() {
	registry.Register(PackID, func() registry.Pack {
		return registry.NewFSPack(PackID, "Built-in levels", files)
	})
}
