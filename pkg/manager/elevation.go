// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"context"

	"github.com/nfvri/itm/pkg/model"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	"googlemaps.github.io/maps"
)

// maxElevationSamples is the most samples the elevation API returns for a path
const maxElevationSamples = 512

// ElevationSource samples terrain elevations along the path between two
// terminals, Tx first.
type ElevationSource interface {
	Elevations(ctx context.Context, tx, rx model.Coordinate, samples int) ([]float64, error)
}

// MapsElevation is an ElevationSource backed by the Google Maps elevation API
type MapsElevation struct {
	client *maps.Client
}

// NewMapsElevation creates an elevation source for apiKey. An empty baseURL
// uses the public endpoint.
func NewMapsElevation(apiKey, baseURL string) (*MapsElevation, error) {
	opts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, maps.WithBaseURL(baseURL))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, errors.New(errors.Invalid, "unable to create maps client: %v", err)
	}
	return &MapsElevation{client: client}, nil
}

// Elevations returns samples evenly spaced elevations in meters
func (e *MapsElevation) Elevations(ctx context.Context, tx, rx model.Coordinate, samples int) ([]float64, error) {
	if samples < 2 || samples > maxElevationSamples {
		return nil, errors.New(errors.Invalid, "elevation samples %d outside [2, %d]", samples, maxElevationSamples)
	}
	req := &maps.ElevationRequest{
		Path: []maps.LatLng{
			{Lat: tx.Lat, Lng: tx.Lng},
			{Lat: rx.Lat, Lng: rx.Lng},
		},
		Samples: samples,
	}
	results, err := e.client.Elevation(ctx, req)
	if err != nil {
		return nil, errors.New(errors.Unavailable, "elevation lookup failed: %v", err)
	}
	if len(results) != samples {
		return nil, errors.New(errors.Unavailable, "elevation lookup returned %d of %d samples", len(results), samples)
	}
	z := make([]float64, len(results))
	for i, r := range results {
		z[i] = r.Elevation
	}
	return z, nil
}
