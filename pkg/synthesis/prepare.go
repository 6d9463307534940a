package synthesis

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// prepare returns a copy of the query adjusted to its synthesis model.
// It returns false if the query cannot be served.
func prepare(
	ctx context.Context,
	q query.Query,
	retrieve bool,
	log *messageLog,
) (query.Query, bool) {
	switch v := q.(type) {
	case *query.MonitoringFeatureQuery:
		res := v.Clone()
		if !retrieve {
			return res, true
		}
		if res.ID == "" {
			log.fail(ctx, nil, msgMissingID)
			return res, false
		}
		if len(res.MonitoringFeature) > 0 {
			log.warn(ctx, nil, fmt.Sprintf(msgIDWithFeatures,
				res.ID, strings.Join(res.MonitoringFeature, ", ")))
			res.MonitoringFeature = nil
		}
		return res, true
	case *query.TimeseriesQuery:
		res := v.Clone()
		if strings.ToUpper(res.AggregationDuration) != vocab.DurationNone {
			res.AggregationDuration = vocab.DurationDay
		} else {
			res.AggregationDuration = vocab.DurationNone
		}
		return res, true
	default:
		return q, true
	}
}
