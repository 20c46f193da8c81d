package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Record is one metabolite's configured initial state. The YAML shape
// mirrors the record files:
//
//	glucose:
//	  quantity: 10
//	  meta:
//	    concentration:
//	      range:
//	        max: 1000
type Record struct {
	// Quantity is the initial pool quantity.
	Quantity float64 `json:"quantity" yaml:"quantity"`

	// Meta carries optional record metadata.
	Meta RecordMeta `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// RecordMeta is the metadata block of a metabolite record.
type RecordMeta struct {
	Concentration Concentration `json:"concentration,omitempty" yaml:"concentration,omitempty"`
}

// Concentration describes the allowed concentration of a species.
type Concentration struct {
	Range ConcentrationRange `json:"range,omitempty" yaml:"range,omitempty"`
}

// ConcentrationRange bounds a concentration.
type ConcentrationRange struct {
	Max float64 `json:"max" yaml:"max"`
}

// MaxQuantity returns the pool ceiling the record implies: the configured
// range maximum, or the quantity itself when no range is given.
func (r Record) MaxQuantity() float64 {
	if r.Meta.Concentration.Range.Max > 0 {
		return r.Meta.Concentration.Range.Max
	}
	return r.Quantity
}

// LoadMetabolites reads a YAML file mapping species names to records.
func LoadMetabolites(path string) (map[string]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metabolite records: %w", err)
	}

	records := make(map[string]Record)
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing metabolite records: %w", err)
	}

	return records, nil
}
