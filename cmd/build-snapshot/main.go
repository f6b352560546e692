// Command build-snapshot converts a GeoNames-format postal code file
// (tab-separated, as distributed in US.zip) into a zipsearch snapshot.
//
// Usage:
//
//	go run ./cmd/build-snapshot [config.yaml]
//
// The config file defaults to build-snapshot.yaml. A .env file in the
// working directory and the ZIPSEARCH_INPUT / ZIPSEARCH_OUTPUT environment
// variables override the configured paths.
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Kydoimos97/zipsearch"
)

// geoNamesFields is the column count of a GeoNames postal code file.
const geoNamesFields = 12

type config struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

func loadConfig(path string) (config, error) {
	cfg := config{
		Input:  "US.txt",
		Output: "zipcodes.snap",
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	// .env and environment override the config file.
	_ = godotenv.Load()
	if v := os.Getenv("ZIPSEARCH_INPUT"); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv("ZIPSEARCH_OUTPUT"); v != "" {
		cfg.Output = v
	}
	return cfg, nil
}

// readPostalCodes parses a GeoNames postal code file into catalog records.
// Rows without parseable coordinates are kept without a coordinate pair;
// the engine excludes them from radius queries.
func readPostalCodes(r io.Reader) ([]zipsearch.ZipcodeRecord, error) {
	titleCaser := cases.Title(language.AmericanEnglish)

	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = geoNamesFields

	var records []zipsearch.ZipcodeRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading postal code row: %w", err)
		}

		rec := zipsearch.ZipcodeRecord{
			Zipcode:   row[1],
			MajorCity: titleCaser.String(strings.ToLower(strings.TrimSpace(row[2]))),
			County:    row[5],
			State:     strings.ToUpper(row[4]),
		}
		lat, latErr := strconv.ParseFloat(row[9], 64)
		lng, lngErr := strconv.ParseFloat(row[10], 64)
		if latErr == nil && lngErr == nil {
			rec.Lat = &lat
			rec.Lng = &lng
		}
		records = append(records, rec)
	}
	return records, nil
}

func main() {
	configPath := "build-snapshot.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(cfg.Input)
	if err != nil {
		log.Fatalf("opening input: %v", err)
	}
	defer f.Close()

	records, err := readPostalCodes(f)
	if err != nil {
		log.Fatal(err)
	}
	if err := zipsearch.WriteSnapshot(cfg.Output, records); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d records to %s", len(records), cfg.Output)
}
