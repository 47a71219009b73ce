// Package extract defines the boundary between site-specific extraction and
// the normalization pipeline. A site extractor (browser automation, out of
// scope here) produces raw text fragments; every field may be empty and the
// pipeline must degrade per field rather than reject a building.
package extract

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
)

// Unit is one floorplan row as extracted: a label and the row's raw text,
// from which beds, baths, sqft, and the rent fragment are parsed.
type Unit struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Building is the raw per-building payload from a site extractor.
type Building struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	SourceURL    string `json:"source_url"`
	PageText     string `json:"page_text"`
	BuildingType string `json:"building_type,omitempty"`
	YearBuilt    *int   `json:"year_built,omitempty"`
	NumUnits     *int   `json:"num_units,omitempty"`
	Stories      *int   `json:"stories,omitempty"`
	// Lat/Lon are set when the source page itself exposed coordinates
	// (structured data, map embeds); they take precedence over geocoding.
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
	Units []Unit   `json:"units"`
}

// LoadFile reads a JSON array of raw buildings produced by an extractor.
func LoadFile(path string) ([]Building, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read %s", path)
	}
	var buildings []Building
	if err := json.Unmarshal(data, &buildings); err != nil {
		return nil, eris.Wrapf(err, "extract: parse %s", path)
	}
	return buildings, nil
}
