package repair

import (
	"encoding/json"
	"errors"

	"ai_course_backend/pkg/monitoring"
)

// ErrUnrecoverable means every repair stage failed to produce a value
// matching the expected schema. Callers substitute their deterministic
// fallback instead of propagating this upward.
var ErrUnrecoverable = errors.New("response unrecoverable after all repair stages")

// Stage names, in cascade order.
const (
	StageExtracted = "extracted"
	StageTargeted  = "targeted"
	StageGeneric   = "generic"
	StageCombined  = "combined"
	StageFailed    = "failed"
)

// Recover runs the repair cascade over a raw completion: extract the
// JSON span, parse, and on failure retry with progressively more
// aggressive textual repairs. The first candidate that parses and
// satisfies the named schema is re-encoded and returned. Never panics;
// the only failure mode is ErrUnrecoverable.
func Recover(raw string, schemaName string) (json.RawMessage, error) {
	wantArray := schemaName == SchemaQuestionArray
	candidate := Extract(raw, wantArray)

	attempts := []struct {
		stage string
		text  string
	}{
		{StageExtracted, candidate},
		{StageTargeted, TargetedRepair(candidate)},
		{StageGeneric, GenericRepair(candidate)},
		{StageCombined, GenericRepair(TargetedRepair(candidate))},
	}

	for _, attempt := range attempts {
		var parsed any
		if err := json.Unmarshal([]byte(attempt.text), &parsed); err != nil {
			continue
		}
		if err := validate(schemaName, parsed); err != nil {
			continue
		}
		out, err := json.Marshal(parsed)
		if err != nil {
			continue
		}
		monitoring.RepairOutcomes.WithLabelValues(schemaName, attempt.stage).Inc()
		return out, nil
	}

	monitoring.RepairOutcomes.WithLabelValues(schemaName, StageFailed).Inc()
	return nil, ErrUnrecoverable
}
