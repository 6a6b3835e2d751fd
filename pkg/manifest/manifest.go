// Package manifest loads and searches the list of known races.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/samber/lo"

	"github.com/mpapenbr/race-results-hub/pkg/config"
	"github.com/mpapenbr/race-results-hub/pkg/model"
	"github.com/mpapenbr/race-results-hub/pkg/source"
)

var ErrInvalidManifest = errors.New("invalid manifest")

// Load reads the manifest from src. There is no retry.
func Load(ctx context.Context, src source.Source) ([]model.RaceDescriptor, error) {
	data, err := src.Fetch(ctx, config.ManifestName)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a manifest document.
// Field values may be strings or numbers, both end up in their string form.
func Parse(data []byte) ([]model.RaceDescriptor, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	entries, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected array, got %T", ErrInvalidManifest, doc)
	}
	ret := make([]model.RaceDescriptor, 0, len(entries))
	for i, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d is not an object", ErrInvalidManifest, i)
		}
		ret = append(ret, model.RaceDescriptor{
			Date:     stringValue(m["date"]),
			Series:   stringValue(m["series"]),
			RaceNum:  stringValue(m["race_num"]),
			Map:      stringValue(m["map"]),
			Car:      stringValue(m["car"]),
			Division: stringValue(m["division"]),
			Filename: stringValue(m["filename"]),
		})
	}
	return ret, nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return oj.JSON(val)
	}
}

// Filter returns the races where any field contains term (case-insensitive).
// An empty term matches every race.
func Filter(races []model.RaceDescriptor, term string) []model.RaceDescriptor {
	needle := strings.ToLower(term)
	return lo.Filter(races, func(r model.RaceDescriptor, _ int) bool {
		return lo.SomeBy(r.Fields(), func(f string) bool {
			return strings.Contains(strings.ToLower(f), needle)
		})
	})
}

// FindBySlug looks up the race whose slug equals slug (case-insensitive).
func FindBySlug(races []model.RaceDescriptor, slug string) (model.RaceDescriptor, bool) {
	return lo.Find(races, func(r model.RaceDescriptor) bool {
		return strings.EqualFold(r.Slug(), slug)
	})
}
