package services

import (
	pubnub "github.com/pubnub/go"
)

// Notifier broadcasts mutation notices so connected scheduler UIs can
// refetch. Delivery is fire and forget; a nil *Notifier disables it.
type Notifier struct {
	pn      *pubnub.PubNub
	channel string
}

func NewNotifier(pn *pubnub.PubNub, channel string) *Notifier {
	if pn == nil {
		return nil
	}
	return &Notifier{pn: pn, channel: channel}
}

func (n *Notifier) RecordsChanged(collection, action, id string) {
	if n == nil {
		return
	}

	n.pn.Publish().
		Channel(n.channel).
		Message(map[string]any{
			"collection": collection,
			"action":     action,
			"id":         id,
		}).
		Execute()
}
