// Package events defines the messages the cache and the mutation engine emit
// to subscribers. Every message is a tea.Msg so the interactive surface can
// consume them directly from a Bubble Tea command.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// Reason records why the cached list was replaced.
type Reason string

const (
	// ReasonSeed is a replace performed before any remote read.
	ReasonSeed Reason = "seed"
	// ReasonOptimistic is a local apply ahead of the remote call.
	ReasonOptimistic Reason = "optimistic"
	// ReasonResync is a replace with the authoritative remote list.
	ReasonResync Reason = "resync"
	// ReasonRollback restores a pending mutation snapshot.
	ReasonRollback Reason = "rollback"
)

// ChangeType enumerates the mutation verbs.
type ChangeType string

const (
	ChangeCreate  ChangeType = "create"
	ChangeUpdate  ChangeType = "update"
	ChangeToggle  ChangeType = "toggle"
	ChangeDelete  ChangeType = "delete"
	ChangeReorder ChangeType = "reorder"
)

// ListReplacedMsg is emitted after every cache replace.
type ListReplacedMsg struct {
	Component ComponentID
	Reason    Reason
	Version   uint64
	Count     int
}

// Describe renders the replace in a human-friendly format for logs.
func (m ListReplacedMsg) Describe() string {
	return fmt.Sprintf(`reason:%q version:%d count:%d`, m.Reason, m.Version, m.Count)
}

// MutationSettledMsg announces that a mutation's remote call resolved.
type MutationSettledMsg struct {
	Component ComponentID
	Mutation  uint64
	Action    ChangeType
	ItemID    string
	Err       error
}

// Failed reports whether the remote call was rejected.
func (m MutationSettledMsg) Failed() bool {
	return m.Err != nil
}

// Describe renders the settle in a human-friendly format for logs.
func (m MutationSettledMsg) Describe() string {
	state := "ok"
	if m.Err != nil {
		state = m.Err.Error()
	}
	return fmt.Sprintf(`action:%q id:%q mutation:%d state:%q`, m.Action, m.ItemID, m.Mutation, state)
}

// Describer is implemented by every message in this package.
type Describer interface {
	Describe() string
}

// Describe returns a log friendly rendering of msg, or its Go type.
func Describe(msg tea.Msg) string {
	if d, ok := msg.(Describer); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%T", msg)
}
