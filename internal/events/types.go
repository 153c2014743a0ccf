// Package events provides event management functionality.
package events

import "time"

// EventType represents different event types
type EventType string

const (
	// Ledger writes
	InvestmentAdded     EventType = "INVESTMENT_ADDED"
	TransactionRecorded EventType = "TRANSACTION_RECORDED"
	ValuationUpdated    EventType = "VALUATION_UPDATED"
	LedgerImported      EventType = "LEDGER_IMPORTED"

	// User state
	GoalTargetChanged EventType = "GOAL_TARGET_CHANGED"

	// Background jobs
	SnapshotTaken   EventType = "SNAPSHOT_TAKEN"
	BackupCompleted EventType = "BACKUP_COMPLETED"

	ErrorOccurred EventType = "ERROR_OCCURRED"
)

// LedgerEvents lists the event types that change analytics output
var LedgerEvents = []EventType{
	InvestmentAdded,
	TransactionRecorded,
	ValuationUpdated,
	LedgerImported,
	GoalTargetChanged,
}

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}
