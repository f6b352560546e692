// Package zipsearch answers geographic and administrative lookup queries
// against a fixed, version-stamped catalog of US zipcode records: exact-key
// lookup, city/state lookup, prefix range lookup, radius-bounded proximity
// search, and batched variants.
//
// The catalog is loaded once, either from an in-memory slice or a
// checksummed snapshot file, and indexed at construction. After that the
// engine is immutable and safe for unsynchronized concurrent reads.
//
// Building an engine and querying it:
//
//	engine, err := zipsearch.Open("zipcodes.snap")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	rec, err := engine.ByZipcode("90210")
//	nearby, err := engine.ByCoordinates(34.0901, -118.4065, 10.0)
//
// "Not found" is never an error: single lookups return nil and sequence
// lookups return an empty slice. Errors are reserved for invalid requests,
// engine lifecycle violations, and snapshot load failures; see errors.go
// for the sentinels.
//
// The implementation is organized as follows:
//
//   - Catalog and ids: record.go, store.go
//   - Indices: cityindex.go, prefixindex.go, spatial.go, boundsindex.go
//   - Query surface: engine.go (direct lookups), query.go (structured
//     Search), batch.go (deduplicated batch lookups), suggest.go
//   - Snapshot format: snapshot.go
package zipsearch
