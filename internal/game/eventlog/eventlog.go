// Package eventlog is the append-only transcript sink shared by the condition,
// life and combat packages. Emission order is preserved exactly.
package eventlog

import (
	"fmt"

	"go.uber.org/zap"
)

// Tag classifies an event. Tags render as the bracketed prefix of a line.
type Tag string

const (
	TagStart        Tag = "START"
	TagInit         Tag = "INIT"
	TagRound        Tag = "ROUND"
	TagDefense      Tag = "DEF"
	TagAttack       Tag = "ATTACK"
	TagDamage       Tag = "DMG"
	TagHP           Tag = "HP"
	TagCondition    Tag = "COND"
	TagSave         Tag = "SAVE"
	TagDeathSave    Tag = "DEATHSAVE"
	TagState        Tag = "STATE"
	TagHeal         Tag = "HEAL"
	TagItem         Tag = "ITEM"
	TagTurn         Tag = "TURN"
	TagEnemy        Tag = "ENEMY"
	TagRest         Tag = "REST"
	TagEnd          Tag = "END"
	TagEncounter    Tag = "ENCOUNTER"
	TagEncounterEnd Tag = "ENCOUNTER_END"
	TagContest      Tag = "CONTEST"
)

// Event is one transcript entry. Subject is the combatant the event is about
// and may be empty for global events such as round markers.
type Event struct {
	Tag     Tag
	Subject string
	Message string
}

// String renders "[TAG][Subject] Message", or "[TAG] Message" without a subject.
func (e Event) String() string {
	if e.Subject == "" {
		return fmt.Sprintf("[%s] %s", e.Tag, e.Message)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Tag, e.Subject, e.Message)
}

// Sink receives events in emission order.
type Sink interface {
	Emit(e Event)
}

// Emitf formats a message and emits it to sink.
func Emitf(sink Sink, tag Tag, subject, format string, args ...any) {
	sink.Emit(Event{Tag: tag, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Log is an in-memory Sink. It optionally mirrors each event to a zap logger
// at debug level.
//
// Log is not safe for concurrent use.
type Log struct {
	events []Event
	logger *zap.Logger
}

// New returns an empty Log. A nil logger disables mirroring.
func New(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

// Emit appends e.
//
// Postcondition: Events()[len-1] == e.
func (l *Log) Emit(e Event) {
	l.events = append(l.events, e)
	l.logger.Debug("combat event",
		zap.String("tag", string(e.Tag)),
		zap.String("subject", e.Subject),
		zap.String("message", e.Message),
	)
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Lines renders every event with Event.String.
func (l *Log) Lines() []string {
	return Render(l.events)
}

// Render renders events with Event.String, preserving order.
func Render(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

// Len returns the number of recorded events.
func (l *Log) Len() int {
	return len(l.events)
}

// Filter returns the events carrying tag, in order.
func (l *Log) Filter(tag Tag) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(Event) {}
