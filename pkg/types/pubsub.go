package types

// PubSubMessage is the payload of a Pub/Sub event delivered via Cloud Event.
type PubSubMessage struct {
	Message struct {
		Data       []byte            `json:"data"`
		Attributes map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
}

// RecalcPayload is the body of a life-score recalculation trigger.
type RecalcPayload struct {
	UserID string `json:"user_id"`
}
