package events

import (
	"context"
	"encoding/json"

	"github.com/pitabwire/util"
)

// Subscriber implements queue.SubscribeWorker, feeding catalog lifecycle
// events from the queue back into the local fan-out. Routing through the
// queue means streaming clients observe reloads regardless of which
// replica performed them.
type Subscriber struct {
	Pub *Publisher
}

// Handle is called by frame's pub/sub for each event message.
func (s *Subscriber) Handle(ctx context.Context, _ map[string]string, message []byte) error {
	var env Envelope
	if err := json.Unmarshal(message, &env); err != nil {
		util.Log(ctx).WithError(err).Error("event subscriber: unmarshal envelope")
		return err
	}
	s.Pub.fanOut(env)
	return nil
}
