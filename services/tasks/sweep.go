package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeFinishSweep = "booking:finish-sweep"

// FinishSweepPayload is empty for scheduled sweeps. Manual runs may pin the
// cutoff to replay a missed window.
type FinishSweepPayload struct {
	Cutoff *time.Time `json:"cutoff,omitempty"`
}

// NewFinishSweepTask builds a sweep task; pass nil for a scheduled run.
func NewFinishSweepTask(cutoff *time.Time) (*asynq.Task, error) {
	var payload []byte
	if cutoff != nil {
		b, err := json.Marshal(FinishSweepPayload{Cutoff: cutoff})
		if err != nil {
			return nil, err
		}
		payload = b
	}
	return asynq.NewTask(TypeFinishSweep, payload, asynq.MaxRetry(3), asynq.Timeout(time.Minute)), nil
}

// ParseFinishSweepPayload decodes a sweep task payload; an empty payload is valid.
func ParseFinishSweepPayload(task *asynq.Task) (FinishSweepPayload, error) {
	var p FinishSweepPayload
	if len(task.Payload()) == 0 {
		return p, nil
	}
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}
