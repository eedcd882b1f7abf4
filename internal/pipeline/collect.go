package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollectTIFFs resolves a tif-folder argument into a sorted list of .tif
// paths: a directory is scanned non-recursively, a single file path passes
// through unchanged.
func CollectTIFFs(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, Wrap(IoError, fmt.Sprintf("stat %s", folder), err)
	}
	if !info.IsDir() {
		if !isTIFF(folder) {
			return nil, &Error{Kind: ConfigError, Msg: fmt.Sprintf("%s is not a .tif/.tiff file", folder)}
		}
		return []string{folder}, nil
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, Wrap(IoError, fmt.Sprintf("read directory %s", folder), err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && isTIFF(e.Name()) {
			out = append(out, filepath.Join(folder, e.Name()))
		}
	}
	if len(out) == 0 {
		return nil, &Error{Kind: ConfigError, Msg: fmt.Sprintf("no .tif/.tiff files found under %s", folder)}
	}
	sort.Strings(out)
	return out, nil
}

func isTIFF(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".tif") || strings.HasSuffix(lower, ".tiff")
}
