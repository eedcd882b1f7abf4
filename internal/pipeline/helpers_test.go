package pipeline

import (
	"errors"

	"github.com/defvs/francegen/internal/coordmap"
)

var errBoom = errors.New("boom")

func originZero() coordmap.Origin {
	return coordmap.Origin{X: 0, Z: 0}
}
