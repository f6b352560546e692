package zipsearch

import (
	"testing"

	. "gopkg.in/check.v1"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

func fptr(f float64) *float64 { return &f }
func iptr(i int) *int         { return &i }

// testRecords returns the fixture catalog used across the test files.
// Load order is the slice order; ids are assigned 0..N-1 from it.
func testRecords() []ZipcodeRecord {
	return []ZipcodeRecord{
		{
			Zipcode:     "10001",
			ZipcodeType: ZipcodeTypeStandard,
			MajorCity:   "New York",
			County:      "New York County",
			State:       "NY",
			Lat:         fptr(40.7505),
			Lng:         fptr(-73.9934),
			Timezone:    "America/New_York",
			BoundsWest:  fptr(-74.0037),
			BoundsEast:  fptr(-73.9849),
			BoundsSouth: fptr(40.7405),
			BoundsNorth: fptr(40.7601),
			Population:  iptr(21102),
		},
		{
			Zipcode:     "10002",
			ZipcodeType: ZipcodeTypeStandard,
			MajorCity:   "New York",
			County:      "New York County",
			State:       "NY",
			Lat:         fptr(40.7156),
			Lng:         fptr(-73.9862),
			Population:  iptr(74993),
		},
		{
			Zipcode:      "90210",
			ZipcodeType:  ZipcodeTypeStandard,
			MajorCity:    "Beverly Hills",
			County:       "Los Angeles County",
			State:        "CA",
			Lat:          fptr(34.0901),
			Lng:          fptr(-118.4065),
			BoundsWest:   fptr(-118.4435),
			BoundsEast:   fptr(-118.3683),
			BoundsSouth:  fptr(34.0635),
			BoundsNorth:  fptr(34.1411),
			Population:   iptr(21733),
			AreaCodeList: []string{"310"},
		},
		{
			Zipcode:    "90211",
			MajorCity:  "Beverly Hills",
			State:      "CA",
			Lat:        fptr(34.0652),
			Lng:        fptr(-118.3831),
			Population: iptr(8805),
		},
		{
			Zipcode:    "94105",
			MajorCity:  "San Francisco",
			State:      "CA",
			Lat:        fptr(37.7898),
			Lng:        fptr(-122.3942),
			Population: iptr(5846),
		},
		{
			Zipcode:    "60601",
			MajorCity:  "Chicago",
			State:      "IL",
			Lat:        fptr(41.8853),
			Lng:        fptr(-87.6216),
			Population: iptr(14675),
		},
		{
			Zipcode:    "62701",
			MajorCity:  "Springfield",
			State:      "IL",
			Lat:        fptr(39.7983),
			Lng:        fptr(-89.6544),
			Population: iptr(1100),
		},
		{
			Zipcode:    "01103",
			MajorCity:  "Springfield",
			State:      "MA",
			Lat:        fptr(42.1015),
			Lng:        fptr(-72.5898),
			Population: iptr(2800),
		},
		{
			Zipcode:    "02134",
			MajorCity:  "Allston",
			State:      "MA",
			Lat:        fptr(42.3539),
			Lng:        fptr(-71.1337),
			Population: iptr(20478),
		},
		{
			// No coordinate pair: excluded from the spatial grid.
			Zipcode:     "00501",
			ZipcodeType: ZipcodeTypeUnique,
			MajorCity:   "Holtsville",
			State:       "NY",
		},
		{
			Zipcode:    "99501",
			MajorCity:  "Anchorage",
			State:      "AK",
			Lat:        fptr(61.2181),
			Lng:        fptr(-149.9003),
			Population: iptr(4956),
		},
	}
}

func mustEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(testRecords(), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func zipcodes(records []ZipcodeRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Zipcode
	}
	return out
}

type EngineSuite struct {
	engine *Engine
}

var _ = Suite(&EngineSuite{})

func (s *EngineSuite) SetUpSuite(c *C) {
	e, err := New(testRecords())
	c.Assert(err, IsNil)
	c.Assert(e, Not(IsNil))
	s.engine = e
}

func (s *EngineSuite) TestLen(c *C) {
	c.Assert(s.engine.Len(), Equals, len(testRecords()))
}

func (s *EngineSuite) TestByZipcode(c *C) {
	r, err := s.engine.ByZipcode("10001")
	c.Assert(err, IsNil)
	c.Assert(r, Not(IsNil))
	c.Assert(r.Zipcode, Equals, "10001")
	c.Assert(r.City(), Equals, "New York")
	c.Assert(r.State, Equals, "NY")
	c.Assert(*r.Population, Equals, 21102)
}

func (s *EngineSuite) TestByZipcodeAbsent(c *C) {
	r, err := s.engine.ByZipcode("99999")
	c.Assert(err, IsNil)
	c.Assert(r, IsNil)
}

func (s *EngineSuite) TestByZipcodeZeroPadding(c *C) {
	r, err := s.engine.ByZipcode("501")
	c.Assert(err, IsNil)
	c.Assert(r, Not(IsNil))
	c.Assert(r.Zipcode, Equals, "00501")
}

func (s *EngineSuite) TestByCityAndState(c *C) {
	records, err := s.engine.ByCityAndState("Beverly Hills", "CA")
	c.Assert(err, IsNil)
	c.Assert(zipcodes(records), DeepEquals, []string{"90210", "90211"})

	for _, r := range records {
		c.Assert(r.City(), Equals, "Beverly Hills")
		c.Assert(r.State, Equals, "CA")
	}
}

func (s *EngineSuite) TestByCityAndStateFullStateName(c *C) {
	records, err := s.engine.ByCityAndState("beverly hills", "California")
	c.Assert(err, IsNil)
	c.Assert(zipcodes(records), DeepEquals, []string{"90210", "90211"})
}

func (s *EngineSuite) TestByCityAndStateAbsent(c *C) {
	records, err := s.engine.ByCityAndState("Nowhere", "ZZ")
	c.Assert(err, IsNil)
	c.Assert(records, HasLen, 0)
}

func (s *EngineSuite) TestByCityAcrossStates(c *C) {
	// Springfield exists in IL and MA; ascending state order, then load order.
	records, err := s.engine.ByCity("Springfield")
	c.Assert(err, IsNil)
	c.Assert(zipcodes(records), DeepEquals, []string{"62701", "01103"})
}

func (s *EngineSuite) TestByState(c *C) {
	records, err := s.engine.ByState("CA")
	c.Assert(err, IsNil)
	c.Assert(zipcodes(records), DeepEquals, []string{"90210", "90211", "94105"})

	empty, err := s.engine.ByState("ZZ")
	c.Assert(err, IsNil)
	c.Assert(empty, HasLen, 0)
}

func (s *EngineSuite) TestByPrefix(c *C) {
	records, err := s.engine.ByPrefix("100")
	c.Assert(err, IsNil)
	c.Assert(zipcodes(records), DeepEquals, []string{"10001", "10002"})
}

func (s *EngineSuite) TestByCoordinatesScenario(c *C) {
	// Lower Manhattan; 10002 is closer than 10001, both within 5 miles.
	records, err := s.engine.ByCoordinates(40.7128, -74.0060, 5)
	c.Assert(err, IsNil)
	c.Assert(zipcodes(records), DeepEquals, []string{"10002", "10001"})

	// A 1-mile radius excludes 10001.
	records, err = s.engine.ByCoordinates(40.7128, -74.0060, 1)
	c.Assert(err, IsNil)
	for _, r := range records {
		c.Assert(r.Zipcode, Not(Equals), "10001")
	}
}

func (s *EngineSuite) TestSuggestCities(c *C) {
	names, err := s.engine.SuggestCities("beverli hills", 2)
	c.Assert(err, IsNil)
	c.Assert(names, DeepEquals, []string{"beverly hills"})
}

func (s *EngineSuite) TestClosedEngineRejectsQueries(c *C) {
	e, err := New(testRecords())
	c.Assert(err, IsNil)
	c.Assert(e.Close(), IsNil)
	c.Assert(e.Close(), IsNil) // idempotent

	_, err = e.ByZipcode("10001")
	c.Assert(err, Equals, ErrEngineClosed)
	_, err = e.ByCityAndState("New York", "NY")
	c.Assert(err, Equals, ErrEngineClosed)
	_, err = e.ByCoordinates(40.7128, -74.0060, 5)
	c.Assert(err, Equals, ErrEngineClosed)
	_, err = e.ByPrefix("1")
	c.Assert(err, Equals, ErrEngineClosed)
	_, err = e.Search(Query{Zipcode: "10001"})
	c.Assert(err, Equals, ErrEngineClosed)
	c.Assert(e.Len(), Equals, 0)
}
