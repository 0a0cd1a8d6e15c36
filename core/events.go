package core

// events.go – the append-only event stream consumed by the rest of a
// Synnergy-style node. §6 names it as an external collaborator ("a totally
// ordered append-only stream"); here it is a narrow interface with two
// implementations: one that logs through logrus the way ledger.go's
// EmitTransfer/EmitApproval do, and one that simply records events in a
// slice for assertions in tests.

import (
	log "github.com/sirupsen/logrus"
)

// EventKind names one of the §6 emitted event shapes.
type EventKind string

const (
	EventIssued          EventKind = "Issued"
	EventTransferred     EventKind = "Transferred"
	EventApproval        EventKind = "Approval"
	EventMinted          EventKind = "Minted"
	EventBurned          EventKind = "Burned"
	EventAddLiquidity    EventKind = "AddLiquidity"
	EventRemoveLiquidity EventKind = "RemoveLiquidity"
	EventSwap            EventKind = "Swap"
)

// Event is a single emitted record. Fields are populated according to Kind;
// unused fields are left at their zero value.
type Event struct {
	Kind      EventKind
	Asset     AssetID
	AssetB    AssetID
	Owner     Address
	Spender   Address
	From      Address
	To        Address
	Who       Address
	Amount    Amount
	AmountB   Amount
	Shares    Amount
	Path      []AssetID
	SupplyIn  Amount
	TargetOut Amount
}

// EventSink is the append-only stream §6 describes.
type EventSink interface {
	Emit(Event)
}

// LogEventSink emits every event as a structured logrus line, grounded on
// ledger.go's EmitTransfer/EmitApproval pattern.
type LogEventSink struct {
	Logger *log.Logger
}

func NewLogEventSink(logger *log.Logger) *LogEventSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogEventSink{Logger: logger}
}

func (s *LogEventSink) Emit(e Event) {
	fields := log.Fields{"kind": e.Kind}
	switch e.Kind {
	case EventIssued:
		fields["asset"] = e.Asset
		fields["owner"] = e.Owner
		fields["amount"] = e.Amount.String()
	case EventTransferred:
		fields["asset"] = e.Asset
		fields["from"] = e.From
		fields["to"] = e.To
		fields["amount"] = e.Amount.String()
	case EventApproval:
		fields["asset"] = e.Asset
		fields["owner"] = e.Owner
		fields["spender"] = e.Spender
		fields["amount"] = e.Amount.String()
	case EventMinted:
		fields["asset"] = e.Asset
		fields["to"] = e.To
		fields["amount"] = e.Amount.String()
	case EventBurned:
		fields["asset"] = e.Asset
		fields["from"] = e.From
		fields["amount"] = e.Amount.String()
	case EventAddLiquidity:
		fields["who"] = e.Who
		fields["a"] = e.Asset
		fields["used_a"] = e.Amount.String()
		fields["b"] = e.AssetB
		fields["used_b"] = e.AmountB.String()
		fields["shares"] = e.Shares.String()
	case EventRemoveLiquidity:
		fields["who"] = e.Who
		fields["a"] = e.Asset
		fields["out_a"] = e.Amount.String()
		fields["b"] = e.AssetB
		fields["out_b"] = e.AmountB.String()
		fields["shares"] = e.Shares.String()
	case EventSwap:
		fields["who"] = e.Who
		fields["path"] = e.Path
		fields["supply_in"] = e.SupplyIn.String()
		fields["target_out"] = e.TargetOut.String()
	}
	s.Logger.WithFields(fields).Info("amm event")
}

// RecordingEventSink keeps every emitted event in memory, in order. Used by
// tests that assert on the event stream instead of parsing log output.
type RecordingEventSink struct {
	Events []Event
}

func (s *RecordingEventSink) Emit(e Event) { s.Events = append(s.Events, e) }

// multiSink fans out to more than one sink, e.g. logging and recording at
// once.
type multiSink struct{ sinks []EventSink }

func MultiSink(sinks ...EventSink) EventSink { return &multiSink{sinks: sinks} }

func (m *multiSink) Emit(e Event) {
	for _, s := range m.sinks {
		s.Emit(e)
	}
}
