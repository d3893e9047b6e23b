package main

import (
	"path/filepath"
	"strings"

	"github.com/sqweek/dialog"

	"github.com/Faultbox/glchapters/internal/engine/importer"
	"github.com/Faultbox/glchapters/internal/logger"
)

// pickModel opens a native file dialog filtered to the importable formats.
// It starts in the directory of current when one is set.
func pickModel(current string) (string, error) {
	exts := dialogExtensions(importer.NewDefaultRegistry(logger.L()).Extensions())

	b := dialog.File().
		Title("Open model").
		Filter("3D models", exts...).
		Filter("All files", "*")
	if current != "" {
		b = b.SetStartDir(filepath.Dir(current))
	}
	return b.Load()
}

// dialogExtensions strips the leading dot the importer registry uses.
func dialogExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		out = append(out, strings.TrimPrefix(e, "."))
	}
	return out
}
