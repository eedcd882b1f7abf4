package pipeline

import (
	"github.com/defvs/francegen/internal/coordmap"
	"github.com/defvs/francegen/internal/meta"
)

// Locate implements `francegen locate`: load worldDir's metadata and
// resolve a real-world coordinate to world/chunk coordinates (spec §4.1,
// §6).
func Locate(worldDir string, realX, realZ float64, heightMetres *float64) (coordmap.LocateResult, error) {
	doc, err := meta.Load(worldDir)
	if err != nil {
		return coordmap.LocateResult{}, Wrap(IoError, "load world metadata", err)
	}
	origin := coordmap.Origin{X: doc.OriginModelX, Z: doc.OriginModelZ}
	return coordmap.Locate(origin, realX, realZ, heightMetres), nil
}
