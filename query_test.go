package zipsearch

import (
	"errors"
	"reflect"
	"testing"
)

func TestSearchPrecedence(t *testing.T) {
	e := mustEngine(t)
	defer e.Close()

	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{
			name: "zipcode wins over city and state",
			q:    Query{Zipcode: "10001", City: "Beverly Hills", State: "CA"},
			want: []string{"10001"},
		},
		{
			name: "city and state win over prefix",
			q:    Query{City: "Beverly Hills", State: "CA", Prefix: "1"},
			want: []string{"90210", "90211"},
		},
		{
			name: "coordinates win over prefix",
			q:    Query{Lat: fptr(40.7128), Lng: fptr(-74.0060), Radius: fptr(5.0), Prefix: "9"},
			want: []string{"10002", "10001"},
		},
		{
			name: "prefix wins over state alone",
			q:    Query{Prefix: "100", State: "CA"},
			want: []string{"10001", "10002"},
		},
		{
			name: "state alone",
			q:    Query{State: "IL"},
			want: []string{"60601", "62701"},
		},
		{
			name: "unknown zipcode is empty, not an error",
			q:    Query{Zipcode: "99999"},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := e.Search(tt.q)
			if err != nil {
				t.Fatal(err)
			}
			got := zipcodes(records)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Search(%+v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestSearchDefaultRadius(t *testing.T) {
	e := mustEngine(t)
	defer e.Close()

	// No radius supplied: the 25-mile default covers both Manhattan records.
	records, err := e.Search(Query{Lat: fptr(40.7128), Lng: fptr(-74.0060)})
	if err != nil {
		t.Fatal(err)
	}
	if got := zipcodes(records); !reflect.DeepEqual(got, []string{"10002", "10001"}) {
		t.Errorf("default radius search = %v, want [10002 10001]", got)
	}
}

func TestSearchValidationErrors(t *testing.T) {
	e := mustEngine(t)
	defer e.Close()

	tests := []struct {
		name string
		q    Query
		want error
	}{
		{"radius without point", Query{Radius: fptr(5.0)}, ErrRadiusWithoutPoint},
		{"radius with lat only", Query{Lat: fptr(40.0), Radius: fptr(5.0)}, ErrRadiusWithoutPoint},
		{"negative radius", Query{Lat: fptr(40.0), Lng: fptr(-74.0), Radius: fptr(-2.0)}, ErrNegativeRadius},
		{"empty query", Query{}, ErrInvalidQuery},
		{"only demographic filters", Query{PopulationLower: iptr(1000)}, ErrInvalidQuery},
		{"lat without lng", Query{Lat: fptr(40.0)}, ErrInvalidQuery},
		{"city without state", Query{City: "Springfield"}, ErrInvalidQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Search(tt.q)
			if !errors.Is(err, tt.want) {
				t.Errorf("Search(%+v) error = %v, want %v", tt.q, err, tt.want)
			}
		})
	}
}

func TestSearchPopulationFilter(t *testing.T) {
	e := mustEngine(t)
	defer e.Close()

	records, err := e.Search(Query{
		State:           "NY",
		PopulationLower: iptr(20000),
		PopulationUpper: iptr(50000),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := zipcodes(records); !reflect.DeepEqual(got, []string{"10001"}) {
		t.Errorf("population band [20000, 50000] over NY = %v, want [10001]", got)
	}

	// Records without a population value never satisfy a band.
	records, err = e.Search(Query{State: "NY", PopulationLower: iptr(0)})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		if r.Zipcode == "00501" {
			t.Error("record without population passed a population filter")
		}
	}
}

func TestSearchReturnsCapAppliedAfterFilters(t *testing.T) {
	e := mustEngine(t)
	defer e.Close()

	// 10001 precedes 10002 in load order but fails the filter. If the cap
	// were applied first the result would be empty.
	records, err := e.Search(Query{
		State:           "NY",
		PopulationLower: iptr(50000),
		Returns:         1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := zipcodes(records); !reflect.DeepEqual(got, []string{"10002"}) {
		t.Errorf("filtered capped search = %v, want [10002]", got)
	}

	records, err = e.Search(Query{State: "CA", Returns: 2})
	if err != nil {
		t.Fatal(err)
	}
	if got := zipcodes(records); !reflect.DeepEqual(got, []string{"90210", "90211"}) {
		t.Errorf("capped CA search = %v, want [90210 90211]", got)
	}
}
