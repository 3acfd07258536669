// Package dropzone holds the directory of drop zones and keeps their current
// weather up to date.
package dropzone

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/lox/skylog/internal/models"
)

// FilterAll disables a status or region filter.
const FilterAll = "all"

type Directory struct {
	zones []models.Dropzone
	byID  map[string]int
}

// NewDirectory returns the built-in directory of French drop zones.
func NewDirectory() *Directory {
	return NewDirectoryFrom(zones)
}

func NewDirectoryFrom(list []models.Dropzone) *Directory {
	d := &Directory{
		zones: slices.Clone(list),
		byID:  make(map[string]int, len(list)),
	}
	for i, z := range d.zones {
		d.byID[z.ID] = i
	}
	return d
}

// All returns a copy of every zone in directory order.
func (d *Directory) All() []models.Dropzone {
	return slices.Clone(d.zones)
}

func (d *Directory) Get(id string) (models.Dropzone, bool) {
	i, ok := d.byID[id]
	if !ok {
		return models.Dropzone{}, false
	}
	return d.zones[i], true
}

func (d *Directory) Len() int { return len(d.zones) }

// Regions returns the distinct regions in sorted order.
func (d *Directory) Regions() []string {
	seen := make(map[string]bool)
	var regions []string
	for _, z := range d.zones {
		if !seen[z.Region] {
			seen[z.Region] = true
			regions = append(regions, z.Region)
		}
	}
	slices.Sort(regions)
	return regions
}

// Filter returns the zones whose name, city or region contains search
// (case-insensitive) and whose status and region match exactly. An empty
// value or FilterAll disables the status and region filters.
func (d *Directory) Filter(search, status, region string) []models.Dropzone {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]models.Dropzone, 0, len(d.zones))
	for _, z := range d.zones {
		if search != "" &&
			!strings.Contains(strings.ToLower(z.Name), search) &&
			!strings.Contains(strings.ToLower(z.City), search) &&
			!strings.Contains(strings.ToLower(z.Region), search) {
			continue
		}
		if status != "" && status != FilterAll && string(z.Status) != status {
			continue
		}
		if region != "" && region != FilterAll && z.Region != region {
			continue
		}
		out = append(out, z)
	}
	return out
}

// SortFavoritesFirst orders zones with favourites first, each group sorted
// by city using French collation. The input slice is not modified.
func SortFavoritesFirst(list []models.Dropzone, favorites []string) []models.Dropzone {
	fav := make(map[string]bool, len(favorites))
	for _, id := range favorites {
		fav[id] = true
	}
	col := collate.New(language.French)

	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b models.Dropzone) int {
		switch {
		case fav[a.ID] && !fav[b.ID]:
			return -1
		case !fav[a.ID] && fav[b.ID]:
			return 1
		}
		return col.CompareString(a.City, b.City)
	})
	return out
}
