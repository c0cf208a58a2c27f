// Package file loads the shuttle network from a YAML document of the form
//
//	planets:
//	  tatooine:
//	    - city: mos_eisley
//	      coordinates: [3528, -4804]
//	      destinations:
//	        - {planet: corellia, city: coronet}
//
// Documents are checked against an embedded JSON schema before decoding.
package file

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"galaxyassist/internal/domain/travel"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "file:///shuttle-network.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

type document struct {
	Planets map[string][]stopDoc `yaml:"planets"`
}

type stopDoc struct {
	City         string            `yaml:"city"`
	Coordinates  []int             `yaml:"coordinates"`
	Destinations []travel.Location `yaml:"destinations"`
}

type Source struct {
	Path string
}

func (s Source) LoadStops(_ context.Context) ([]travel.ShuttleStop, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read shuttle graph %s: %w", s.Path, err)
	}
	return Parse(b)
}

// Parse validates and decodes a shuttle network document. Structural problems
// are reported as travel.ErrMalformedGraph.
func Parse(b []byte) ([]travel.ShuttleStop, error) {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, &travel.MalformedGraphError{Reason: err.Error()}
	}
	if err := validate(raw); err != nil {
		return nil, &travel.MalformedGraphError{Reason: err.Error()}
	}

	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, &travel.MalformedGraphError{Reason: err.Error()}
	}
	planets := make([]string, 0, len(doc.Planets))
	for p := range doc.Planets {
		planets = append(planets, p)
	}
	sort.Strings(planets)

	out := []travel.ShuttleStop{}
	for _, planet := range planets {
		for _, sd := range doc.Planets[planet] {
			dests := sd.Destinations
			if dests == nil {
				dests = []travel.Location{}
			}
			out = append(out, travel.ShuttleStop{
				Planet:       planet,
				City:         sd.City,
				Coordinates:  travel.Point{X: sd.Coordinates[0], Y: sd.Coordinates[1]},
				Destinations: dests,
			})
		}
	}
	return out, nil
}

func validate(raw any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile shuttle graph schema: %w", err)
	}
	// round-trip through JSON so numbers and maps have the shapes the
	// validator expects
	b, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	return sch.Validate(v)
}
