package live

import (
	"encoding/json"

	"github.com/lukev/hanabisolve/internal/batch"
)

// progressEvent is the wire shape pushed to subscribers of a batch
// run's feed: one per completed (or timed-out) seed.
type progressEvent struct {
	Type     string `json:"type"`
	RunID    string `json:"runID"`
	JobID    string `json:"jobID"`
	Winnable bool   `json:"winnable"`
	TimedOut bool   `json:"timedOut"`
}

// NewBatchProgressFunc returns a batch.ProgressFunc that pushes each
// result as a JSON event to runID's subscribers on hub.
func NewBatchProgressFunc(hub *Hub, runID string) batch.ProgressFunc {
	return func(res batch.Result) {
		msg, err := json.Marshal(progressEvent{
			Type:     "seedResult",
			RunID:    runID,
			JobID:    res.ID,
			Winnable: res.Winnable,
			TimedOut: res.TimedOut,
		})
		if err != nil {
			return
		}
		hub.BroadcastToRun(runID, msg)
	}
}

// runCompleteEvent is the terminal wire event for a finished batch run,
// carrying the final tally so a dashboard can render a summary without
// having counted every seedResult event itself.
type runCompleteEvent struct {
	Type     string `json:"type"`
	RunID    string `json:"runID"`
	JobCount int    `json:"jobCount"`
	Winnable int    `json:"winnable"`
	TimedOut int    `json:"timedOut"`
}

// FinishRun tallies results and evicts runID from hub after
// broadcasting the tally as a terminal "runComplete" event.
func FinishRun(hub *Hub, runID string, results []batch.Result) {
	ev := runCompleteEvent{Type: "runComplete", RunID: runID, JobCount: len(results)}
	for _, res := range results {
		if res.TimedOut {
			ev.TimedOut++
		} else if res.Winnable {
			ev.Winnable++
		}
	}
	msg, err := json.Marshal(ev)
	if err != nil {
		return
	}
	hub.FinishRun(runID, msg)
}
