package dashboard

import (
	"github.com/pkg/errors"

	"github.com/Tureright/performance-test-k6/model"
)

// Thresholds is the one classification policy applied to every run,
// whatever category it belongs to.
type Thresholds struct {
	PassFailRate float64
	PassP95Ms    float64
	WarnFailRate float64
	WarnP95Ms    float64
}

var DefaultThresholds = Thresholds{
	PassFailRate: 0.05,
	PassP95Ms:    2000,
	WarnFailRate: 0.10,
	WarnP95Ms:    5000,
}

// Classify maps a failure rate fraction and a p95 latency in milliseconds
// to a status. Comparisons are strict, a value sitting on a cutoff falls
// into the worse bucket.
func (t Thresholds) Classify(failRate, p95 float64) model.Status {
	if failRate < t.PassFailRate && p95 < t.PassP95Ms {
		return model.StatusPass
	}
	if failRate < t.WarnFailRate && p95 < t.WarnP95Ms {
		return model.StatusWarning
	}
	return model.StatusFail
}

func (t Thresholds) Validate() error {
	if t.PassFailRate <= 0 || t.PassP95Ms <= 0 {
		return errors.New("pass thresholds must be positive")
	}
	if t.WarnFailRate < t.PassFailRate {
		return errors.Errorf("warn fail rate %v is below pass fail rate %v", t.WarnFailRate, t.PassFailRate)
	}
	if t.WarnP95Ms < t.PassP95Ms {
		return errors.Errorf("warn p95 %vms is below pass p95 %vms", t.WarnP95Ms, t.PassP95Ms)
	}
	return nil
}
