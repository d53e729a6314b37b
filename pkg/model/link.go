package model

import "time"

// Link is one point-to-point prediction request
type Link struct {
	ID          string           `mapstructure:"id" yaml:"id" json:"id"`
	Profile     TerrainProfile   `mapstructure:"-" yaml:"-" json:"profile"`
	System      SystemParameters `mapstructure:"system" yaml:"system" json:"system"`
	Variability VariabilitySpec  `mapstructure:"variability" yaml:"variability" json:"variability"`
}

// LinkResult pairs a link with its prediction
type LinkResult struct {
	LinkID   string  `json:"linkId" yaml:"linkId"`
	Distance float64 `json:"distance" yaml:"distance"` // meters
	Result   Result  `json:"result" yaml:"result"`
}

// Snapshot is the result set of one batch run
type Snapshot struct {
	ID      string       `json:"id" yaml:"id"`
	Created time.Time    `json:"created" yaml:"created"`
	Results []LinkResult `json:"results" yaml:"results"`
}

// Failures counts the results carrying an error code
func (s Snapshot) Failures() int {
	n := 0
	for _, r := range s.Results {
		if !r.Result.Valid() {
			n++
		}
	}
	return n
}
