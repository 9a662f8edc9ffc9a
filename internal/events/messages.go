package events

import (
	"encoding/json"
	"time"

	"github.com/mkrall/pennywise/backend/internal/model"
)

// BatchCompletedMessage announces a finished generation run. Consumers that
// need the full run record fetch it by RunID.
type BatchCompletedMessage struct {
	RunID           string    `json:"runId"`
	AsOf            time.Time `json:"asOf"`
	ExpensesCreated int       `json:"expensesCreated"`
	IncomesCreated  int       `json:"incomesCreated"`
	TotalProcessed  int       `json:"totalProcessed"`
	Expired         int       `json:"expired"`
	Failed          int       `json:"failed"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewBatchCompletedMessage builds a message from a persisted batch run.
func NewBatchCompletedMessage(run *model.BatchRun) *BatchCompletedMessage {
	return &BatchCompletedMessage{
		RunID:           run.ID,
		AsOf:            run.AsOf,
		ExpensesCreated: run.ExpensesCreated,
		IncomesCreated:  run.IncomesCreated,
		TotalProcessed:  run.TotalProcessed,
		Expired:         run.Expired,
		Failed:          run.Failed,
		Timestamp:       time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *BatchCompletedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BatchCompletedMessageFromJSON creates a message from JSON bytes.
func BatchCompletedMessageFromJSON(data []byte) (*BatchCompletedMessage, error) {
	var msg BatchCompletedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
