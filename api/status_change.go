package api

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ValueTransition records a boolean status flipping to To.
// From is absent when the previous value was unknown.
type ValueTransition struct {
	From *bool `json:"from,omitempty"`
	To   bool  `json:"to"`
}

func (t *ValueTransition) UnmarshalJSON(data []byte) error {
	var wire struct {
		From *bool `json:"from"`
		To   *bool `json:"to"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "decode value transition")
	}
	if wire.To == nil {
		return errors.New("value transition is missing \"to\"")
	}

	t.From = wire.From
	t.To = *wire.To

	return nil
}

// StatusChange is the data of a status-change event. It is exactly one of
// HardwareChange, SoftwareChange or HardwareAndSoftwareChange.
type StatusChange interface {
	Accept(v StatusChangeVisitor)
	isStatusChange()
}

// StatusChangeVisitor must handle every StatusChange variant.
type StatusChangeVisitor interface {
	VisitHardware(c HardwareChange)
	VisitSoftware(c SoftwareChange)
	VisitHardwareAndSoftware(c HardwareAndSoftwareChange)
}

// HardwareChange is a transition of the hardware online flag only.
type HardwareChange struct {
	HW ValueTransition
}

// SoftwareChange is a transition of the software online flag only.
type SoftwareChange struct {
	SW ValueTransition
}

// HardwareAndSoftwareChange is a simultaneous transition of both flags.
type HardwareAndSoftwareChange struct {
	HW ValueTransition
	SW ValueTransition
}

func (c HardwareChange) Accept(v StatusChangeVisitor)            { v.VisitHardware(c) }
func (c SoftwareChange) Accept(v StatusChangeVisitor)            { v.VisitSoftware(c) }
func (c HardwareAndSoftwareChange) Accept(v StatusChangeVisitor) { v.VisitHardwareAndSoftware(c) }

func (HardwareChange) isStatusChange()            {}
func (SoftwareChange) isStatusChange()            {}
func (HardwareAndSoftwareChange) isStatusChange() {}

type statusChangeWire struct {
	HW *ValueTransition `json:"hw,omitempty"`
	SW *ValueTransition `json:"sw,omitempty"`
}

// statusChangeEncoder flattens a variant back into its wire shape.
type statusChangeEncoder struct {
	wire statusChangeWire
}

func (e *statusChangeEncoder) VisitHardware(c HardwareChange) {
	e.wire = statusChangeWire{HW: &c.HW}
}

func (e *statusChangeEncoder) VisitSoftware(c SoftwareChange) {
	e.wire = statusChangeWire{SW: &c.SW}
}

func (e *statusChangeEncoder) VisitHardwareAndSoftware(c HardwareAndSoftwareChange) {
	e.wire = statusChangeWire{HW: &c.HW, SW: &c.SW}
}

func marshalStatusChange(c StatusChange) ([]byte, error) {
	if c == nil {
		return nil, errors.New("status change has no data")
	}

	enc := &statusChangeEncoder{}
	c.Accept(enc)

	return json.Marshal(enc.wire)
}

// unmarshalStatusChange picks the variant from which of hw/sw are present.
func unmarshalStatusChange(data []byte) (StatusChange, error) {
	var wire statusChangeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "decode status change")
	}

	switch {
	case wire.HW != nil && wire.SW != nil:
		return HardwareAndSoftwareChange{HW: *wire.HW, SW: *wire.SW}, nil
	case wire.HW != nil:
		return HardwareChange{HW: *wire.HW}, nil
	case wire.SW != nil:
		return SoftwareChange{SW: *wire.SW}, nil
	default:
		return nil, errors.New("status change carries neither hw nor sw")
	}
}
