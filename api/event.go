package api

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// EventType is the discriminator of a device event payload.
type EventType string

const (
	EventTypeCreation     EventType = "creation"
	EventTypeReboot       EventType = "reboot"
	EventTypeInstallation EventType = "installation"
	EventTypeStatusChange EventType = "status-change"
)

// EventPayload is the tagged part of a device event. It is exactly one of
// CreationEvent, RebootEvent, InstallationEvent or StatusChangeEvent.
type EventPayload interface {
	Type() EventType
	Accept(v EventPayloadVisitor)
	isEventPayload()
}

// EventPayloadVisitor must handle every EventPayload variant.
type EventPayloadVisitor interface {
	VisitCreation(e CreationEvent)
	VisitReboot(e RebootEvent)
	VisitInstallation(e InstallationEvent)
	VisitStatusChange(e StatusChangeEvent)
}

type CreationEvent struct{}

type RebootEvent struct{}

type InstallationEvent struct {
	Location Location `json:"location"`
}

type StatusChangeEvent struct {
	Change StatusChange
}

func (CreationEvent) Type() EventType     { return EventTypeCreation }
func (RebootEvent) Type() EventType       { return EventTypeReboot }
func (InstallationEvent) Type() EventType { return EventTypeInstallation }
func (StatusChangeEvent) Type() EventType { return EventTypeStatusChange }

func (e CreationEvent) Accept(v EventPayloadVisitor)     { v.VisitCreation(e) }
func (e RebootEvent) Accept(v EventPayloadVisitor)       { v.VisitReboot(e) }
func (e InstallationEvent) Accept(v EventPayloadVisitor) { v.VisitInstallation(e) }
func (e StatusChangeEvent) Accept(v EventPayloadVisitor) { v.VisitStatusChange(e) }

func (CreationEvent) isEventPayload()     {}
func (RebootEvent) isEventPayload()       {}
func (InstallationEvent) isEventPayload() {}
func (StatusChangeEvent) isEventPayload() {}

// DeviceEvent is a recorded event of a device.
type DeviceEvent struct {
	ID             string
	DeviceID       string
	OrganizationID string
	Meta           Metadata
	Payload        EventPayload
}

type deviceEventWire struct {
	ID             string          `json:"id"`
	DeviceID       string          `json:"device_id"`
	OrganizationID string          `json:"organization_id"`
	Meta           Metadata        `json:"meta"`
	Type           EventType       `json:"type"`
	Data           json.RawMessage `json:"data,omitempty"`
}

func (e DeviceEvent) MarshalJSON() ([]byte, error) {
	typ, data, err := marshalPayload(e.Payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(deviceEventWire{
		ID:             e.ID,
		DeviceID:       e.DeviceID,
		OrganizationID: e.OrganizationID,
		Meta:           e.Meta,
		Type:           typ,
		Data:           data,
	})
}

func (e *DeviceEvent) UnmarshalJSON(data []byte) error {
	var wire deviceEventWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "decode device event")
	}

	payload, err := unmarshalPayload(wire.Type, wire.Data)
	if err != nil {
		return errors.Wrapf(err, "device event %s", wire.ID)
	}

	*e = DeviceEvent{
		ID:             wire.ID,
		DeviceID:       wire.DeviceID,
		OrganizationID: wire.OrganizationID,
		Meta:           wire.Meta,
		Payload:        payload,
	}

	return nil
}

// DeviceEventRequest records a new event for a device.
type DeviceEventRequest struct {
	DeviceID string
	Payload  EventPayload
}

type deviceEventRequestWire struct {
	DeviceID string          `json:"device_id"`
	Type     EventType       `json:"type"`
	Data     json.RawMessage `json:"data,omitempty"`
}

func (r DeviceEventRequest) MarshalJSON() ([]byte, error) {
	typ, data, err := marshalPayload(r.Payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(deviceEventRequestWire{DeviceID: r.DeviceID, Type: typ, Data: data})
}

func (r *DeviceEventRequest) UnmarshalJSON(data []byte) error {
	var wire deviceEventRequestWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return errors.Wrap(err, "decode device event request")
	}

	payload, err := unmarshalPayload(wire.Type, wire.Data)
	if err != nil {
		return err
	}

	*r = DeviceEventRequest{DeviceID: wire.DeviceID, Payload: payload}

	return nil
}

// payloadEncoder collects the wire data of a payload variant.
type payloadEncoder struct {
	data json.RawMessage
	err  error
}

func (p *payloadEncoder) VisitCreation(CreationEvent) {}

func (p *payloadEncoder) VisitReboot(RebootEvent) {}

func (p *payloadEncoder) VisitInstallation(e InstallationEvent) {
	p.data, p.err = json.Marshal(e)
}

func (p *payloadEncoder) VisitStatusChange(e StatusChangeEvent) {
	p.data, p.err = marshalStatusChange(e.Change)
}

func marshalPayload(p EventPayload) (EventType, json.RawMessage, error) {
	if p == nil {
		return "", nil, errors.New("device event has no payload")
	}

	enc := &payloadEncoder{}
	p.Accept(enc)
	if enc.err != nil {
		return "", nil, errors.Wrapf(enc.err, "encode %s payload", p.Type())
	}

	return p.Type(), enc.data, nil
}

func unmarshalPayload(typ EventType, data json.RawMessage) (EventPayload, error) {
	switch typ {
	case EventTypeCreation:
		return CreationEvent{}, nil
	case EventTypeReboot:
		return RebootEvent{}, nil
	case EventTypeInstallation:
		if isNull(data) {
			return nil, errors.New("installation event has no data")
		}

		var e InstallationEvent
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, errors.Wrap(err, "decode installation data")
		}

		return e, nil
	case EventTypeStatusChange:
		if isNull(data) {
			return nil, errors.New("status-change event has no data")
		}

		change, err := unmarshalStatusChange(data)
		if err != nil {
			return nil, err
		}

		return StatusChangeEvent{Change: change}, nil
	default:
		return nil, errors.Errorf("unknown device event type %q", typ)
	}
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
