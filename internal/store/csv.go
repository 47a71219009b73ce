// Package store persists the listing dataset as delimited text: a per-run
// snapshot plus an accumulated all-time store rewritten in full each run.
package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/umn-housing/listings-cli/internal/geo"
	"github.com/umn-housing/listings-cli/internal/model"
)

// Columns is the stable column order of every CSV artifact. Downstream
// tooling assumes this set never varies within one schema version.
var Columns = []string{
	"listing_id",
	"building_name",
	"full_address",
	"street",
	"city",
	"state",
	"zip",
	"lat",
	"lon",
	"dist_km",
	"unit_label",
	"beds",
	"baths",
	"sqft",
	"rent_raw",
	"rent_min",
	"rent_max",
	"price_type",
	"is_per_bed",
	"is_shared_bedroom",
	"year_built",
	"num_units",
	"building_type",
	"stories",
	"has_in_unit_laundry",
	"has_on_site_laundry",
	"has_dishwasher",
	"has_ac",
	"has_heat_included",
	"has_water_included",
	"has_internet_included",
	"is_furnished",
	"has_gym",
	"has_pool",
	"has_rooftop_or_clubroom",
	"has_parking_available",
	"has_garage",
	"pets_allowed",
	"is_student_branded",
	"scrape_date",
	"source_url",
}

// LoadOptions controls accumulated-store loading.
type LoadOptions struct {
	// Filter, when set, retroactively enforces the current radius on rows
	// persisted under an earlier or looser configuration.
	Filter *geo.Filter
}

// LoadStats reports what happened during a load.
type LoadStats struct {
	Loaded   int
	Dropped  int // rows excluded by the radius re-filter
	BadRows  int // rows skipped as unparseable
	Missing  bool
}

// WriteCSV writes listings to path, header always included so the file is
// valid for downstream tools even with zero rows. The write goes through a
// temp file and rename so a crash cannot leave a truncated store behind.
func WriteCSV(path string, listings []model.Listing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "store: create dir for %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".listings-*.csv")
	if err != nil {
		return eris.Wrap(err, "store: create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	w := csv.NewWriter(tmp)
	if err := w.Write(Columns); err != nil {
		tmp.Close()
		return eris.Wrap(err, "store: write header")
	}
	for i := range listings {
		if err := w.Write(encodeRow(&listings[i])); err != nil {
			tmp.Close()
			return eris.Wrapf(err, "store: write row %s", listings[i].ListingID)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return eris.Wrap(err, "store: flush")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "store: close temp file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "store: rename into %s", path)
	}
	return nil
}

// Load reads the accumulated store into a map keyed by listing id. A missing
// or corrupt file is not fatal: the run proceeds with an empty store. Rows
// from older schema versions load with unknown columns dropped and missing
// columns at their defaults.
func Load(path string, opts LoadOptions) (map[string]model.Listing, LoadStats, error) {
	existing := make(map[string]model.Listing)
	var stats LoadStats

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			stats.Missing = true
			return existing, stats, nil
		}
		zap.L().Warn("store: cannot open existing store, starting empty",
			zap.String("path", path), zap.Error(err))
		stats.Missing = true
		return existing, stats, nil
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		zap.L().Warn("store: unreadable header, starting empty",
			zap.String("path", path), zap.Error(err))
		return existing, stats, nil
	}
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[name] = i
	}

	for {
		row, err := r.Read()
		if err != nil {
			break // EOF or corrupt tail; keep what parsed
		}
		l, ok := decodeRow(row, colIdx)
		if !ok {
			stats.BadRows++
			continue
		}

		if opts.Filter != nil && l.DistKM != nil && *l.DistKM > opts.Filter.RadiusKM {
			stats.Dropped++
			zap.L().Debug("store: excluding persisted listing beyond radius",
				zap.String("listing_id", l.ListingID),
				zap.Float64("dist_km", *l.DistKM),
			)
			continue
		}

		existing[l.ListingID] = l
		stats.Loaded++
	}

	if stats.Dropped > 0 {
		zap.L().Info("store: re-filter dropped persisted listings",
			zap.Int("dropped", stats.Dropped),
			zap.Float64("radius_km", opts.Filter.RadiusKM),
		)
	}
	return existing, stats, nil
}

func encodeRow(l *model.Listing) []string {
	return []string{
		l.ListingID,
		l.BuildingName,
		l.FullAddress,
		l.Street,
		l.City,
		l.State,
		l.Zip,
		formatFloat(l.Lat),
		formatFloat(l.Lon),
		formatFloat(l.DistKM),
		l.UnitLabel,
		formatFloat(l.Beds),
		formatFloat(l.Baths),
		formatInt(l.Sqft),
		l.RentRaw,
		formatFloat(l.RentMin),
		formatFloat(l.RentMax),
		string(l.PriceType),
		formatBool(l.IsPerBed),
		formatBool(l.IsSharedBedroom),
		formatInt(l.YearBuilt),
		formatInt(l.NumUnits),
		l.BuildingType,
		formatInt(l.Stories),
		formatBool(l.HasInUnitLaundry),
		formatBool(l.HasOnSiteLaundry),
		formatBool(l.HasDishwasher),
		formatBool(l.HasAC),
		formatBool(l.HasHeatIncluded),
		formatBool(l.HasWaterIncluded),
		formatBool(l.HasInternetIncluded),
		formatBool(l.IsFurnished),
		formatBool(l.HasGym),
		formatBool(l.HasPool),
		formatBool(l.HasRooftopOrClubroom),
		formatBool(l.HasParkingAvailable),
		formatBool(l.HasGarage),
		formatBool(l.PetsAllowed),
		formatBool(l.IsStudentBranded),
		l.ScrapeDate.Format(time.RFC3339),
		l.SourceURL,
	}
}

func decodeRow(row []string, colIdx map[string]int) (model.Listing, bool) {
	get := func(name string) string {
		idx, ok := colIdx[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var l model.Listing
	l.ListingID = get("listing_id")
	if l.ListingID == "" {
		return l, false
	}

	l.BuildingName = get("building_name")
	l.FullAddress = get("full_address")
	l.Street = get("street")
	l.City = get("city")
	l.State = get("state")
	l.Zip = get("zip")
	l.Lat = parseFloat(get("lat"))
	l.Lon = parseFloat(get("lon"))
	l.DistKM = parseFloat(get("dist_km"))
	l.UnitLabel = get("unit_label")
	l.Beds = parseFloat(get("beds"))
	l.Baths = parseFloat(get("baths"))
	l.Sqft = parseInt(get("sqft"))
	l.RentRaw = get("rent_raw")
	l.RentMin = parseFloat(get("rent_min"))
	l.RentMax = parseFloat(get("rent_max"))
	l.PriceType = model.PriceType(get("price_type"))
	if l.PriceType == "" {
		l.PriceType = model.PriceTypeUnknown
	}
	l.IsPerBed = parseBool(get("is_per_bed"))
	l.IsSharedBedroom = parseBool(get("is_shared_bedroom"))
	l.YearBuilt = parseInt(get("year_built"))
	l.NumUnits = parseInt(get("num_units"))
	l.BuildingType = get("building_type")
	l.Stories = parseInt(get("stories"))
	l.HasInUnitLaundry = parseBool(get("has_in_unit_laundry"))
	l.HasOnSiteLaundry = parseBool(get("has_on_site_laundry"))
	l.HasDishwasher = parseBool(get("has_dishwasher"))
	l.HasAC = parseBool(get("has_ac"))
	l.HasHeatIncluded = parseBool(get("has_heat_included"))
	l.HasWaterIncluded = parseBool(get("has_water_included"))
	l.HasInternetIncluded = parseBool(get("has_internet_included"))
	l.IsFurnished = parseBool(get("is_furnished"))
	l.HasGym = parseBool(get("has_gym"))
	l.HasPool = parseBool(get("has_pool"))
	l.HasRooftopOrClubroom = parseBool(get("has_rooftop_or_clubroom"))
	l.HasParkingAvailable = parseBool(get("has_parking_available"))
	l.HasGarage = parseBool(get("has_garage"))
	l.PetsAllowed = parseBool(get("pets_allowed"))
	l.IsStudentBranded = parseBool(get("is_student_branded"))
	if ts, err := time.Parse(time.RFC3339, get("scrape_date")); err == nil {
		l.ScrapeDate = ts
	}
	l.SourceURL = get("source_url")
	return l, true
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// formatBool serializes the tri-state flags: literal True/False, empty for
// "not evaluated".
func formatBool(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "True"
	}
	return "False"
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseInt(s string) *int {
	if s == "" {
		return nil
	}
	// Older exports wrote integers through a float pass ("850.0").
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	i := int(n)
	return &i
}

func parseBool(s string) *bool {
	switch s {
	case "True", "true", "1":
		return model.Bool(true)
	case "False", "false", "0":
		return model.Bool(false)
	default:
		return nil // unknown, not false
	}
}
