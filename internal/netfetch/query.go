package netfetch

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/defvs/francegen/internal/config"
)

// BuildOverpassQuery renders an [out:json] query covering bbox, unioning one
// way/relation clause per configured OSM layer tag filter. "out geom qt;" is
// used (not "out geom(bbox);") so every way and relation member carries
// inline node geometry regardless of whether it merely touches bbox,
// avoiding Overpass's bbox-clipped-geometry pitfall.
func BuildOverpassQuery(layers []config.OSMLayer, bbox string) string {
	var b strings.Builder
	b.WriteString("[out:json][timeout:60];\n(\n")
	for _, layer := range layers {
		filter := tagFilter(layer.Tags)
		fmt.Fprintf(&b, "  way%s(%s);\n", filter, bbox)
		fmt.Fprintf(&b, "  relation[\"type\"=\"multipolygon\"]%s(%s);\n", filter, bbox)
	}
	b.WriteString(");\nout geom qt;\n")
	return b.String()
}

func tagFilter(tags map[string]string) string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "[%q=%q]", k, tags[k])
	}
	return b.String()
}

// OverpassRequestURL builds the GET form of an Overpass request: the query
// as a "data" parameter, which overpass-api.de accepts as an alternative to
// a POST body (keeping the Fetcher boundary to a single URL argument).
func OverpassRequestURL(overpassURL, query string) string {
	return overpassURL + "?data=" + url.QueryEscape(query)
}
