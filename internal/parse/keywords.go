// Package parse turns raw extracted text fragments into typed listing fields.
// Parsers accept empty input, never panic, and degrade to nil/defaults on
// malformed text so a single bad fragment cannot abort a run.
package parse

import (
	_ "embed"
	"regexp"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// Keywords holds the pattern and keyword data driving price classification,
// student-branding detection, and amenity matching.
type Keywords struct {
	PerBed          []*regexp.Regexp
	SharedBedroom   []*regexp.Regexp
	StudentKeywords []string
	Amenities       map[string][]string
}

type keywordsFile struct {
	PerBedPatterns        []string            `yaml:"per_bed_patterns"`
	SharedBedroomPatterns []string            `yaml:"shared_bedroom_patterns"`
	StudentKeywords       []string            `yaml:"student_keywords"`
	Amenities             map[string][]string `yaml:"amenities"`
}

// ParseKeywords parses keyword data from YAML. Ordering of the per-bed and
// shared-bedroom pattern lists is preserved; first match wins.
func ParseKeywords(data []byte) (*Keywords, error) {
	var kf keywordsFile
	if err := yaml.Unmarshal(data, &kf); err != nil {
		return nil, eris.Wrap(err, "parse: unmarshal keywords")
	}

	kw := &Keywords{
		StudentKeywords: kf.StudentKeywords,
		Amenities:       kf.Amenities,
	}
	for _, p := range kf.PerBedPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, eris.Wrapf(err, "parse: compile per-bed pattern %q", p)
		}
		kw.PerBed = append(kw.PerBed, re)
	}
	for _, p := range kf.SharedBedroomPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, eris.Wrapf(err, "parse: compile shared-bedroom pattern %q", p)
		}
		kw.SharedBedroom = append(kw.SharedBedroom, re)
	}
	return kw, nil
}

var (
	defaultKeywords     *Keywords
	defaultKeywordsOnce sync.Once
)

// DefaultKeywords returns the embedded keyword set. The embedded data is part
// of the build; a parse failure here is a programming error.
func DefaultKeywords() *Keywords {
	defaultKeywordsOnce.Do(func() {
		kw, err := ParseKeywords(keywordsYAML)
		if err != nil {
			panic(err)
		}
		defaultKeywords = kw
	})
	return defaultKeywords
}
