package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservability_ZeroValueIsSafe(t *testing.T) {
	var nilObs *Observability
	o := &Observability{}

	assert.NotPanics(t, func() {
		for _, obs := range []*Observability{nilObs, o} {
			obs.RecordJobProcessed(context.Background(), "rank-venues", "completed")
			obs.RecordJobDuration(context.Background(), "rank-venues", time.Second, "completed")
			obs.RecordAnalysis(context.Background(), "fallback")
			obs.RecordRecommendations(context.Background(), "Mumbai", 5)
			obs.Shutdown()
		}
	})
}
