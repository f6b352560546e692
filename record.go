package zipsearch

import (
	geohash "github.com/TomiHiltunen/geohash-golang"
)

// ZipcodeType classifies a postal code area.
type ZipcodeType string

const (
	ZipcodeTypeStandard ZipcodeType = "STANDARD"
	ZipcodeTypePOBox    ZipcodeType = "PO_BOX"
	ZipcodeTypeUnique   ZipcodeType = "UNIQUE"
)

// geohashPrecision is the character length of geohashes produced by
// ZipcodeRecord.Geohash. Eight characters resolve to roughly 40m, well
// below zipcode granularity.
const geohashPrecision = 8

// ZipcodeRecord is one immutable postal code area with its geographic and
// demographic attributes. Zipcode is the only field guaranteed present;
// every other field may be absent. Pointer fields are nil when absent,
// string and slice fields are empty.
//
// Lat and Lng are all-or-nothing: either both are set or both are nil.
// The four bounds fields are individually optional but internally
// consistent (west < east and south < north when all four are set).
type ZipcodeRecord struct {
	Zipcode        string // 5-digit primary key
	ZipcodeType    ZipcodeType
	MajorCity      string
	PostOfficeCity string
	CommonCityList []string
	County         string
	State          string // 2-letter code
	Lat            *float64
	Lng            *float64
	Timezone       string
	RadiusInMiles  *float64
	BoundsWest     *float64
	BoundsEast     *float64
	BoundsSouth    *float64
	BoundsNorth    *float64

	LandAreaInSqmi        *float64
	WaterAreaInSqmi       *float64
	AreaCodeList          []string
	Population            *int
	PopulationDensity     *float64
	HousingUnits          *int
	OccupiedHousingUnits  *int
	MedianHomeValue       *int
	MedianHouseholdIncome *int
}

// City is an alias for MajorCity. It is a computed accessor, not a stored
// field, so the record has exactly one source of truth for the city name.
func (r ZipcodeRecord) City() string {
	return r.MajorCity
}

// Coordinates returns the record's coordinate pair. ok is false when the
// record has no coordinates.
func (r ZipcodeRecord) Coordinates() (lat, lng float64, ok bool) {
	if r.Lat == nil || r.Lng == nil {
		return 0, 0, false
	}
	return *r.Lat, *r.Lng, true
}

// Geohash returns the geohash of the record's coordinates, or the empty
// string when the record has none.
func (r ZipcodeRecord) Geohash() string {
	lat, lng, ok := r.Coordinates()
	if !ok {
		return ""
	}
	return geohash.EncodeWithPrecision(lat, lng, geohashPrecision)
}

// hasBounds reports whether all four bounding box edges are present.
func (r ZipcodeRecord) hasBounds() bool {
	return r.BoundsWest != nil && r.BoundsEast != nil && r.BoundsSouth != nil && r.BoundsNorth != nil
}
