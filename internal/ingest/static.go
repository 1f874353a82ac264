package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minwoo-jeong/asreco/internal/model"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

// StaticReferences holds the two pre-packaged reference tables. Either may be
// nil when its file is missing; the pipeline degrades instead of failing.
type StaticReferences struct {
	Assets *tabular.Table
	Org    *tabular.Table
}

// ReadFile reads a spreadsheet from disk, dispatching on extension. Anything
// that is not an xlsx/xlsm workbook is treated as delimited text.
func ReadFile(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(f)
	default:
		return ReadCSV(f)
	}
}

// LoadStaticReferences loads the asset registry and org chart from dataDir.
// A missing or unreadable file yields a missing-reference issue and a nil
// table rather than an error.
func LoadStaticReferences(dataDir, assetFile, orgFile string) (*StaticReferences, []model.Issue) {
	refs := &StaticReferences{}
	var issues []model.Issue

	load := func(name, label string) *tabular.Table {
		path := filepath.Join(dataDir, name)
		t, err := ReadFile(path)
		if err != nil {
			issues = append(issues, model.Issue{
				Stage:   "static_references",
				Kind:    model.IssueMissingReference,
				Message: fmt.Sprintf("%s unavailable at %s: %v", label, path, err),
			})
			return nil
		}
		return t
	}

	refs.Assets = load(assetFile, "asset registry")
	refs.Org = load(orgFile, "org chart")
	return refs, issues
}
