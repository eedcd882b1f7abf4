package pipeline

import "github.com/defvs/francegen/internal/meta"

// Info implements `francegen info`: load a world's metadata document (spec
// §6 "print metadata summary").
func Info(worldDir string) (meta.Document, error) {
	doc, err := meta.Load(worldDir)
	if err != nil {
		return meta.Document{}, Wrap(IoError, "load world metadata", err)
	}
	return doc, nil
}
