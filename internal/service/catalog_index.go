package service

import (
	"strings"

	"github.com/noah-isme/study-plan-api/internal/models"
)

// CatalogIndex is an immutable lookup over the requirements catalog keyed by course code.
// It is safe to share across goroutines.
type CatalogIndex struct {
	entries    []models.CatalogEntry
	byCode     map[string]int
	duplicates []string
}

// NewCatalogIndex indexes entries in catalog order. Codes are matched exactly after trimming;
// when a code repeats the first entry wins.
func NewCatalogIndex(entries []models.CatalogEntry) *CatalogIndex {
	idx := &CatalogIndex{
		entries: make([]models.CatalogEntry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e = trimEntry(e)
		if e.CourseCode == "" {
			continue
		}
		if _, exists := idx.byCode[e.CourseCode]; exists {
			idx.duplicates = append(idx.duplicates, e.CourseCode)
			continue
		}
		idx.byCode[e.CourseCode] = len(idx.entries)
		idx.entries = append(idx.entries, e)
	}
	return idx
}

// Lookup returns the entry for a course code.
func (i *CatalogIndex) Lookup(code string) (models.CatalogEntry, bool) {
	if i == nil {
		return models.CatalogEntry{}, false
	}
	pos, ok := i.byCode[strings.TrimSpace(code)]
	if !ok {
		return models.CatalogEntry{}, false
	}
	return i.entries[pos], true
}

// Entries returns a copy of the indexed entries in catalog order.
func (i *CatalogIndex) Entries() []models.CatalogEntry {
	if i == nil {
		return nil
	}
	out := make([]models.CatalogEntry, len(i.entries))
	copy(out, i.entries)
	return out
}

// Len returns the number of distinct course codes.
func (i *CatalogIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.entries)
}

// Duplicates lists codes that appeared more than once and were ignored after the first.
func (i *CatalogIndex) Duplicates() []string {
	if i == nil {
		return nil
	}
	return append([]string(nil), i.duplicates...)
}

func trimEntry(e models.CatalogEntry) models.CatalogEntry {
	e.CourseCode = strings.TrimSpace(e.CourseCode)
	e.CourseName = strings.TrimSpace(e.CourseName)
	e.Program = models.Program(strings.TrimSpace(string(e.Program)))
	e.Level = models.Level(strings.TrimSpace(string(e.Level)))
	e.Term = models.Term(strings.TrimSpace(string(e.Term)))
	e.Prereq1 = strings.TrimSpace(e.Prereq1)
	e.Prereq2 = strings.TrimSpace(e.Prereq2)
	return e
}
