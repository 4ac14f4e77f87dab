package trail

import (
	"path"
	"sort"
	"strings"

	"github.com/cedarcreek/trailmap/internal/debug"
	"github.com/cedarcreek/trailmap/internal/store"
)

// List loads every trail document under prefix. Entries that fail to
// read or parse are skipped with a logged warning so one broken
// document does not take the whole catalog down.
func List(s store.Store, prefix string) ([]*Document, error) {
	paths, err := s.List(prefix)
	if err != nil {
		return nil, err
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		if path.Base(p) == DocumentName {
			dirs[path.Dir(p)] = true
		}
	}

	var docs []*Document
	for dir := range dirs {
		doc, err := Load(s, dir)
		if err != nil {
			debug.Log("trail: skipping %s: %v", dir, err)
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return strings.Compare(docs[i].Trail.Name, docs[j].Trail.Name) < 0
	})
	return docs, nil
}
