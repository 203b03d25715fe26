package amqp

import (
	"encoding/json"
	"time"
)

// RecordSyncMessage asks the worker to sync one journaled record to the
// spreadsheet. It carries only the record id; the worker loads the full
// record from the journal.
type RecordSyncMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(id string) *RecordSyncMessage {
	return &RecordSyncMessage{ID: id, Timestamp: time.Now()}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
