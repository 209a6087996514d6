package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/actaeon02/budget-tracker/internal/sheets"
)

// RowSyncMessage tells the worker to push one queued row to the
// spreadsheet. The cells themselves never travel on the wire; the
// worker loads them from the local database by id. Table rides along
// for log context and as a sanity check against the stored row.
type RowSyncMessage struct {
	ID        int64        `json:"id"`
	Table     sheets.Table `json:"table"`
	Version   int64        `json:"version"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewRowSyncMessage(id int64, table sheets.Table, version int64) *RowSyncMessage {
	return &RowSyncMessage{
		ID:        id,
		Table:     table,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *RowSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RowSyncMessageFromJSON(data []byte) (*RowSyncMessage, error) {
	var msg RowSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode row sync message: %w", err)
	}
	if msg.ID <= 0 {
		return nil, fmt.Errorf("row sync message without a row id: %s", data)
	}
	return &msg, nil
}
