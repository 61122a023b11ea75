package amqp

import (
	"encoding/json"
	"time"

	"github.com/CrokNoks/account-sub000/internal/core/domain"
)

// ClassificationMessage carries the feature bag of one transaction to the
// classifier worker. The worker owns writing any resulting category back.
type ClassificationMessage struct {
	Features  domain.ClassifierFeatures `json:"features"`
	Timestamp time.Time                 `json:"timestamp"`
}

// NewClassificationMessage creates a new classification message.
func NewClassificationMessage(features domain.ClassifierFeatures) *ClassificationMessage {
	return &ClassificationMessage{
		Features:  features,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ClassificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ClassificationMessageFromJSON creates a message from JSON bytes
func ClassificationMessageFromJSON(data []byte) (*ClassificationMessage, error) {
	var msg ClassificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
