package events

import "encoding/json"

// EventData is the interface that all event data types must implement
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// InvestmentAddedData contains data for InvestmentAdded events
type InvestmentAddedData struct {
	InvestmentID  string  `json:"investment_id"`
	PropertyID    string  `json:"property_id"`
	TotalInvested float64 `json:"total_invested"`
}

// EventType returns the event type for InvestmentAddedData
func (d *InvestmentAddedData) EventType() EventType {
	return InvestmentAdded
}

// TransactionRecordedData contains data for TransactionRecorded events
type TransactionRecordedData struct {
	TransactionID string  `json:"transaction_id"`
	PropertyID    string  `json:"property_id,omitempty"`
	Type          string  `json:"type"`
	Amount        float64 `json:"amount"`
}

// EventType returns the event type for TransactionRecordedData
func (d *TransactionRecordedData) EventType() EventType {
	return TransactionRecorded
}

// ValuationUpdatedData contains data for ValuationUpdated events
type ValuationUpdatedData struct {
	InvestmentID string  `json:"investment_id"`
	CurrentValue float64 `json:"current_value"`
}

// EventType returns the event type for ValuationUpdatedData
func (d *ValuationUpdatedData) EventType() EventType {
	return ValuationUpdated
}

// LedgerImportedData contains data for LedgerImported events
type LedgerImportedData struct {
	Investments  int `json:"investments"`
	Transactions int `json:"transactions"`
}

// EventType returns the event type for LedgerImportedData
func (d *LedgerImportedData) EventType() EventType {
	return LedgerImported
}

// GoalTargetChangedData contains data for GoalTargetChanged events
type GoalTargetChangedData struct {
	GoalID string  `json:"goal_id"`
	Target float64 `json:"target"`
}

// EventType returns the event type for GoalTargetChangedData
func (d *GoalTargetChangedData) EventType() EventType {
	return GoalTargetChanged
}

// SnapshotTakenData contains data for SnapshotTaken events
type SnapshotTakenData struct {
	Date         string  `json:"date"`
	CurrentValue float64 `json:"current_value"`
	HealthScore  int     `json:"health_score"`
}

// EventType returns the event type for SnapshotTakenData
func (d *SnapshotTakenData) EventType() EventType {
	return SnapshotTaken
}

// BackupCompletedData contains data for BackupCompleted events
type BackupCompletedData struct {
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes"`
	Databases int    `json:"databases"`
}

// EventType returns the event type for BackupCompletedData
func (d *BackupCompletedData) EventType() EventType {
	return BackupCompleted
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Error   string                 `json:"error"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// DecodeData converts an event's payload back to its typed form.
// It returns nil for unknown event types or malformed payloads.
func DecodeData(event *Event) EventData {
	if event == nil || event.Data == nil {
		return nil
	}

	var data EventData
	switch event.Type {
	case InvestmentAdded:
		data = &InvestmentAddedData{}
	case TransactionRecorded:
		data = &TransactionRecordedData{}
	case ValuationUpdated:
		data = &ValuationUpdatedData{}
	case LedgerImported:
		data = &LedgerImportedData{}
	case GoalTargetChanged:
		data = &GoalTargetChangedData{}
	case SnapshotTaken:
		data = &SnapshotTakenData{}
	case BackupCompleted:
		data = &BackupCompletedData{}
	case ErrorOccurred:
		data = &ErrorEventData{}
	default:
		return nil
	}

	if err := convertMapToStruct(event.Data, data); err != nil {
		return nil
	}
	return data
}

// convertMapToStruct converts a map[string]interface{} to a struct
func convertMapToStruct(m map[string]interface{}, v interface{}) error {
	jsonBytes, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonBytes, v)
}
