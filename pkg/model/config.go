// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"strings"

	"github.com/onosproject/onos-lib-go/pkg/errors"
	"github.com/spf13/viper"
)

// Scenario is the configuration consumed by the command line tool
type Scenario struct {
	Name             string           `mapstructure:"name" yaml:"name"`
	System           SystemParameters `mapstructure:"system" yaml:"system"`
	Variability      VariabilitySpec  `mapstructure:"variability" yaml:"variability"`
	Area             AreaParameters   `mapstructure:"area" yaml:"area"`
	Profile          []float64        `mapstructure:"profile" yaml:"profile"`                   // packed PFL
	ProfileFile      string           `mapstructure:"profileFile" yaml:"profileFile"`           // whitespace separated elevations
	ProfileIntervals int              `mapstructure:"profileIntervals" yaml:"profileIntervals"` // online elevation lookup between Tx and Rx
	Tx               Coordinate       `mapstructure:"tx" yaml:"tx"`
	Rx               Coordinate       `mapstructure:"rx" yaml:"rx"`
	SweepPoints      int              `mapstructure:"sweepPoints" yaml:"sweepPoints"`
	MaxLoss          float64          `mapstructure:"maxLoss" yaml:"maxLoss"`
	Redis            RedisConfig      `mapstructure:"redis" yaml:"redis"`
}

// RedisConfig locates the snapshot store
type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// LoadConfig reads the named configuration into model. The file is looked up
// in the working directory, $HOME/.itm and /etc/itm, and ITM_ prefixed
// environment variables override its keys.
func LoadConfig(model interface{}, name string) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.itm")
	v.AddConfigPath("/etc/itm")
	v.SetEnvPrefix("ITM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return loadInto(v, model)
}

// LoadConfigFile reads an explicit configuration file into model.
func LoadConfigFile(model interface{}, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("ITM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return loadInto(v, model)
}

func loadInto(v *viper.Viper, model interface{}) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return errors.New(errors.NotFound, "configuration not found: %v", err)
		}
		return errors.New(errors.Invalid, "unable to read configuration: %v", err)
	}
	if err := v.Unmarshal(model); err != nil {
		return errors.New(errors.Invalid, "unable to decode configuration: %v", err)
	}
	return nil
}

// PointToPointLink builds the link described by the scenario from the
// inline profile.
func (s Scenario) PointToPointLink() (Link, error) {
	profile, err := ParsePFL(s.Profile)
	if err != nil {
		return Link{}, err
	}
	return Link{ID: s.Name, Profile: profile, System: s.System, Variability: s.Variability}, nil
}
