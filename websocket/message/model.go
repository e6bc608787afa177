package message

import (
	"encoding/json"
)

const (
	TypeSubscribe    = "SUBSCRIBE"
	TypeUnsubscribe  = "UNSUBSCRIBE"
	TypeSubscribed   = "SUBSCRIBED"
	TypeUnsubscribed = "UNSUBSCRIBED"
	TypeEvent        = "EVENT"
	TypeError        = "ERROR"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type SubscriptionPayload struct {
	TournamentID uint64 `json:"tournamentId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
