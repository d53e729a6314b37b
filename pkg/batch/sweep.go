package batch

import (
	"context"
	"fmt"

	"github.com/nfvri/itm/pkg/model"
)

// Sweep predicts the link over growing prefixes of its profile, at points
// evenly spaced interval counts, giving loss as a function of distance.
func (e *Engine) Sweep(ctx context.Context, link model.Link, points int) ([]model.LinkResult, error) {
	links, err := SweepLinks(link, points)
	if err != nil {
		return nil, err
	}
	return e.predict(ctx, links)
}

// SweepLinks builds the truncated links of a sweep. Prefixes shorter than
// one interval are skipped.
func SweepLinks(link model.Link, points int) ([]model.Link, error) {
	intervals := link.Profile.Intervals()
	if points < 1 || intervals < 1 {
		return nil, fmt.Errorf("cannot sweep %d points over %d intervals", points, intervals)
	}
	if points > intervals {
		points = intervals
	}

	links := make([]model.Link, 0, points)
	for k := 1; k <= points; k++ {
		n := k * intervals / points
		profile, err := link.Profile.Truncate(n)
		if err != nil {
			return nil, err
		}
		l := link
		l.ID = fmt.Sprintf("%s@%d", link.ID, n)
		l.Profile = profile
		links = append(links, l)
	}
	return links, nil
}
