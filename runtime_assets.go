package stationreg

import (
	"io/fs"

	vanilla "github.com/goliatone/go-stationreg/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the stylesheet and blur-validation script used by
// the vanilla renderer so Go applications can serve them directly.
//
// Typical mount:
//
//	r.Handle("/assets/*",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(stationreg.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
