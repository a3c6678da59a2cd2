package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/kilianp07/studyplan/core/events"
	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/internal/eventbus"
)

// PlanMessage is the retained digest published on <prefix>/<user>/plan.
type PlanMessage struct {
	UserID      string          `json:"user_id"`
	Kind        string          `json:"kind"`
	GeneratedAt time.Time       `json:"generated_at"`
	StartDate   model.Date      `json:"start_date"`
	Days        int             `json:"days"`
	Sessions    int             `json:"sessions"`
	TotalHours  float64         `json:"total_hours"`
	Today       []model.Session `json:"today"`
}

// ProgressMessage is published on <prefix>/<user>/progress.
type ProgressMessage struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Completed bool      `json:"completed"`
	Time      time.Time `json:"time"`
}

// ProgressCommand is accepted on <prefix>/<user>/progress/set.
type ProgressCommand struct {
	SessionID string `json:"session_id"`
	Completed bool   `json:"completed"`
}

// ProgressHandler applies a progress command received over MQTT.
type ProgressHandler func(ctx context.Context, userID, sessionID string, completed bool) error

// Notifier mirrors study plan events to MQTT topics and optionally accepts
// progress updates from devices.
type Notifier struct {
	c       *client
	prefix  string
	handler ProgressHandler
	ctx     context.Context
}

// NewNotifier connects to the broker. When handler is not nil the notifier
// subscribes to <prefix>/+/progress/set and forwards commands to it; ctx is
// passed to the handler.
func NewNotifier(ctx context.Context, cfg Config, handler ProgressHandler) (*Notifier, error) {
	cfg.SetDefaults()
	n := &Notifier{prefix: strings.TrimSuffix(cfg.TopicPrefix, "/"), handler: handler, ctx: ctx}
	c, err := newClient(cfg, n.onConnect)
	if err != nil {
		return nil, err
	}
	n.c = c
	if err := c.connect(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notifier) onConnect(pc paho.Client) {
	if n.handler == nil {
		return
	}
	topic := n.prefix + "/+/progress/set"
	if token := pc.Subscribe(topic, n.c.qosFor("command"), n.onProgressCommand); token.Wait() && token.Error() != nil {
		n.c.log.Errorf("subscribe %s: %v", topic, token.Error())
	}
}

// PlanTopic returns the topic carrying the plan of userID.
func (n *Notifier) PlanTopic(userID string) string {
	return fmt.Sprintf("%s/%s/plan", n.prefix, userID)
}

// ProgressTopic returns the topic carrying progress updates of userID.
func (n *Notifier) ProgressTopic(userID string) string {
	return fmt.Sprintf("%s/%s/progress", n.prefix, userID)
}

// PublishPlan publishes the retained plan digest of a plan event.
func (n *Notifier) PublishPlan(ev events.PlanEvent) error {
	msg := PlanMessage{
		UserID:      ev.UserID,
		Kind:        string(ev.Kind),
		GeneratedAt: ev.Plan.GeneratedAt,
		StartDate:   ev.Plan.Daily.Date,
		Days:        len(ev.Plan.Weekly),
		Sessions:    len(ev.Plan.Sessions()),
		TotalHours:  ev.Plan.TotalHours(),
		Today:       ev.Plan.Daily.Sessions,
	}
	if msg.Today == nil {
		msg.Today = []model.Session{}
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return n.c.publish("plan", n.PlanTopic(ev.UserID), true, payload)
}

// PublishProgress publishes a progress update.
func (n *Notifier) PublishProgress(ev events.ProgressEvent) error {
	payload, err := json.Marshal(ProgressMessage(ev))
	if err != nil {
		return err
	}
	return n.c.publish("progress", n.ProgressTopic(ev.UserID), false, payload)
}

// Run forwards bus events to MQTT until ctx is canceled or the bus closes,
// then disconnects.
func (n *Notifier) Run(ctx context.Context, bus *eventbus.Bus[events.Event]) {
	sub := bus.Subscribe()
	defer bus.Unsubscribe(sub)
	defer n.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub:
			if !ok {
				return
			}
			var err error
			switch e := ev.(type) {
			case events.PlanEvent:
				err = n.PublishPlan(e)
			case events.ProgressEvent:
				err = n.PublishProgress(e)
			}
			if err != nil {
				n.c.log.Warnf("notify %s: %v", ev.User(), err)
			}
		}
	}
}

func (n *Notifier) onProgressCommand(_ paho.Client, msg paho.Message) {
	userID, ok := n.userFromCommandTopic(msg.Topic())
	if !ok {
		n.c.log.Warnf("ignoring progress command on %s", msg.Topic())
		return
	}
	var cmd ProgressCommand
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil || cmd.SessionID == "" {
		n.c.log.Errorf("invalid progress command for %s: %s", userID, msg.Payload())
		return
	}
	if err := n.handler(n.ctx, userID, cmd.SessionID, cmd.Completed); err != nil {
		n.c.log.Errorf("apply progress command for %s: %v", userID, err)
	}
}

func (n *Notifier) userFromCommandTopic(topic string) (string, bool) {
	rest, ok := strings.CutPrefix(topic, n.prefix+"/")
	if !ok {
		return "", false
	}
	user, ok := strings.CutSuffix(rest, "/progress/set")
	if !ok || user == "" || strings.Contains(user, "/") {
		return "", false
	}
	return user, true
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	if n.c != nil {
		n.c.disconnect()
	}
}
