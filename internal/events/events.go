package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gridlock-labs/lattice/internal/model"
)

// Event topic constants
const (
	TopicItemCreated = "lattice.item.created"
	TopicItemUpdated = "lattice.item.updated"
	TopicItemDeleted = "lattice.item.deleted"

	TopicLinkAdded   = "lattice.link.added"
	TopicLinkRemoved = "lattice.link.removed"

	// Emitted after each successful analysis run, carrying the workspace id
	// and summary counts; consumers wanting the full report re-request it.
	TopicAnalysisCompleted = "lattice.analysis.completed"
)

// Event types

type ItemCreated struct {
	Item *model.WorkItem `json:"item"`
}

type ItemUpdated struct {
	Item    *model.WorkItem `json:"item"`
	Changes map[string]any  `json:"changes"` // field name -> new value
}

type ItemDeleted struct {
	ItemID      string `json:"item_id"`
	WorkspaceID string `json:"workspace_id"`
}

type LinkAdded struct {
	Link *model.Link `json:"link"`
}

type LinkRemoved struct {
	LinkID string `json:"link_id"`
}

type AnalysisCompleted struct {
	WorkspaceID string                  `json:"workspace_id"`
	Summary     *model.DashboardSummary `json:"summary"`
}

// Message is one event as delivered off the bus: the subject it arrived on
// plus the raw JSON payload.
type Message struct {
	Topic string
	Data  []byte
}

// Decode unmarshals the payload into the event type for the message's topic.
// Unknown topics return an error so consumers on wildcard subscriptions can
// skip foreign subjects.
func (m Message) Decode() (any, error) {
	var ev any
	switch m.Topic {
	case TopicItemCreated:
		ev = &ItemCreated{}
	case TopicItemUpdated:
		ev = &ItemUpdated{}
	case TopicItemDeleted:
		ev = &ItemDeleted{}
	case TopicLinkAdded:
		ev = &LinkAdded{}
	case TopicLinkRemoved:
		ev = &LinkRemoved{}
	case TopicAnalysisCompleted:
		ev = &AnalysisCompleted{}
	default:
		return nil, fmt.Errorf("unknown event topic %q", m.Topic)
	}
	if err := json.Unmarshal(m.Data, ev); err != nil {
		return nil, fmt.Errorf("decoding %s event: %w", m.Topic, err)
	}
	return ev, nil
}

// WorkspaceOf returns the workspace a decoded event belongs to, or "" when
// the payload does not carry one (link removals only name the link id).
func WorkspaceOf(ev any) string {
	switch e := ev.(type) {
	case *ItemCreated:
		if e.Item != nil {
			return e.Item.WorkspaceID
		}
	case *ItemUpdated:
		if e.Item != nil {
			return e.Item.WorkspaceID
		}
	case *ItemDeleted:
		return e.WorkspaceID
	case *LinkAdded:
		if e.Link != nil {
			return e.Link.WorkspaceID
		}
	case *AnalysisCompleted:
		return e.WorkspaceID
	}
	return ""
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber delivers bus events as Messages. Call the returned cancel
// function to unsubscribe and close the channel.
type Subscriber interface {
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}

// NoopPublisher discards every event. Used when no NATS URL is configured.
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (n *NoopPublisher) Close() error { return nil }
