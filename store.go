package zipsearch

import "fmt"

// recordStore owns the immutable catalog. Every record is assigned a dense
// integer id equal to its position in load order; all other indices refer
// to records by id. The store also holds the exact-key index since it is
// built from the same uniqueness pass.
type recordStore struct {
	records   []ZipcodeRecord
	byZipcode map[string]int
}

// newRecordStore validates the catalog and assigns ids 0..N-1 in input
// order. Returns a load error on the first duplicate key or structurally
// invalid record.
func newRecordStore(records []ZipcodeRecord) (*recordStore, error) {
	s := &recordStore{
		records:   make([]ZipcodeRecord, 0, len(records)),
		byZipcode: make(map[string]int, len(records)),
	}
	for _, r := range records {
		r.Zipcode = normalizeZipcode(r.Zipcode)
		if err := validateRecord(r); err != nil {
			return nil, err
		}
		if _, ok := s.byZipcode[r.Zipcode]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateZipcode, r.Zipcode)
		}
		s.byZipcode[r.Zipcode] = len(s.records)
		s.records = append(s.records, r)
	}
	return s, nil
}

// validateRecord checks the structural invariants of a single record.
func validateRecord(r ZipcodeRecord) error {
	if !isDigits(r.Zipcode) || len(r.Zipcode) != 5 {
		return fmt.Errorf("%w: zipcode %q is not a 5-digit code", ErrInvalidRecord, r.Zipcode)
	}
	if (r.Lat == nil) != (r.Lng == nil) {
		return fmt.Errorf("%w: zipcode %q has a partial coordinate pair", ErrInvalidRecord, r.Zipcode)
	}
	if r.Lat != nil {
		if *r.Lat < -90 || *r.Lat > 90 || *r.Lng < -180 || *r.Lng > 180 {
			return fmt.Errorf("%w: zipcode %q coordinates out of range", ErrInvalidRecord, r.Zipcode)
		}
	}
	if r.hasBounds() {
		if *r.BoundsWest >= *r.BoundsEast || *r.BoundsSouth >= *r.BoundsNorth {
			return fmt.Errorf("%w: zipcode %q has inconsistent bounds", ErrInvalidRecord, r.Zipcode)
		}
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"radius_in_miles", r.RadiusInMiles},
		{"population_density", r.PopulationDensity},
		{"land_area_in_sqmi", r.LandAreaInSqmi},
		{"water_area_in_sqmi", r.WaterAreaInSqmi},
	} {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%w: zipcode %q has negative %s", ErrInvalidRecord, r.Zipcode, f.name)
		}
	}
	for _, f := range []struct {
		name  string
		value *int
	}{
		{"population", r.Population},
		{"housing_units", r.HousingUnits},
		{"occupied_housing_units", r.OccupiedHousingUnits},
		{"median_home_value", r.MedianHomeValue},
		{"median_household_income", r.MedianHouseholdIncome},
	} {
		if f.value != nil && *f.value < 0 {
			return fmt.Errorf("%w: zipcode %q has negative %s", ErrInvalidRecord, r.Zipcode, f.name)
		}
	}
	return nil
}

// record returns the record for an id. Passing an id that was never
// assigned is a programming error and panics.
func (s *recordStore) record(id int) ZipcodeRecord {
	return s.records[id]
}

// lookup returns the id for an exact zipcode. Unknown keys are a normal
// outcome, reported by ok=false.
func (s *recordStore) lookup(zipcode string) (int, bool) {
	id, ok := s.byZipcode[zipcode]
	return id, ok
}

func (s *recordStore) len() int {
	return len(s.records)
}
