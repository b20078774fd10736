package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeAssignmentCreated  = "assignment.created"
	EventTypeAssignmentApproved = "assignment.approved"
	EventTypeAssignmentRejected = "assignment.rejected"
	EventTypeAssignmentEnded    = "assignment.ended"
	EventTypeOperatorRegistered = "operator.registered"
)

type AssignmentEvent struct {
	BaseEvent
	AssignmentID int64  `json:"assignment_id"`
	OperatorID   int64  `json:"operator_id"`
	BeatID       int64  `json:"beat_id"`
	LocationID   int64  `json:"location_id"`
	Status       string `json:"status"`
}

func NewAssignmentEvent(eventType string, assignmentID, operatorID, beatID, locationID int64, status string) *AssignmentEvent {
	return &AssignmentEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"assignment_id": assignmentID,
				"operator_id":   operatorID,
				"beat_id":       beatID,
				"location_id":   locationID,
				"status":        status,
			},
		},
		AssignmentID: assignmentID,
		OperatorID:   operatorID,
		BeatID:       beatID,
		LocationID:   locationID,
		Status:       status,
	}
}

type OperatorRegisteredEvent struct {
	BaseEvent
	PersonID     int64  `json:"person_id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	EmployeeID   string `json:"employee_id"`
	TempPassword string `json:"-"`
}

func NewOperatorRegisteredEvent(personID int64, email, name, employeeID, tempPassword string) *OperatorRegisteredEvent {
	return &OperatorRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOperatorRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"person_id":   personID,
				"email":       email,
				"employee_id": employeeID,
			},
		},
		PersonID:     personID,
		Email:        email,
		Name:         name,
		EmployeeID:   employeeID,
		TempPassword: tempPassword,
	}
}
