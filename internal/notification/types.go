package notification

import "fmt"

const (
	TransportHTTP = "http"
	TransportNATS = "nats"
	TransportNone = "none"

	newChangesTitle = "New Code Changes"
)

// Message is the payload understood by the push notification service.
type Message struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
}

// NewChangesMessage tells the owner a new push is waiting for a reflection.
func NewChangesMessage(ownerUserID, repositoryName, recordID string) Message {
	return Message{
		UserID: ownerUserID,
		Title:  newChangesTitle,
		Body:   fmt.Sprintf("You have new changes to reflect on in %s", repositoryName),
		URL:    "/dashboard#" + recordID,
	}
}
