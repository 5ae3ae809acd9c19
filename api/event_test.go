package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder notes which variant it was handed.
type recorder struct {
	kind   string
	change StatusChange
	loc    Location
}

func (r *recorder) VisitCreation(CreationEvent) { r.kind = "creation" }
func (r *recorder) VisitReboot(RebootEvent)     { r.kind = "reboot" }
func (r *recorder) VisitInstallation(e InstallationEvent) {
	r.kind = "installation"
	r.loc = e.Location
}
func (r *recorder) VisitStatusChange(e StatusChangeEvent) {
	r.kind = "status-change"
	r.change = e.Change
}

type changeRecorder struct {
	kind string
}

func (r *changeRecorder) VisitHardware(HardwareChange)                       { r.kind = "hw" }
func (r *changeRecorder) VisitSoftware(SoftwareChange)                       { r.kind = "sw" }
func (r *changeRecorder) VisitHardwareAndSoftware(HardwareAndSoftwareChange) { r.kind = "hw+sw" }

const eventMeta = `"meta":{"created_at":"2024-05-01T10:00:00Z","created_by":"auth0|1","updated_at":"2024-05-01T10:00:00Z"}`

func decodeEvent(t *testing.T, tail string) DeviceEvent {
	t.Helper()

	var e DeviceEvent
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e1","device_id":"d1","organization_id":"o1",`+eventMeta+`,`+tail+`}`), &e))

	return e
}

func TestDeviceEvent_StatusChangeVariants(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "hardware only", data: `{"hw":{"to":true}}`, want: "hw"},
		{name: "software only", data: `{"sw":{"from":true,"to":false}}`, want: "sw"},
		{name: "both", data: `{"hw":{"to":true},"sw":{"to":true}}`, want: "hw+sw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := decodeEvent(t, `"type":"status-change","data":`+tt.data)

			rec := &recorder{}
			e.Payload.Accept(rec)
			require.Equal(t, "status-change", rec.kind)

			crec := &changeRecorder{}
			rec.change.Accept(crec)
			assert.Equal(t, tt.want, crec.kind)
		})
	}
}

func TestDeviceEvent_HardwareOnlyIsNotCombined(t *testing.T) {
	e := decodeEvent(t, `"type":"status-change","data":{"hw":{"to":true}}`)

	sc, ok := e.Payload.(StatusChangeEvent)
	require.True(t, ok)

	hw, ok := sc.Change.(HardwareChange)
	require.True(t, ok, "got %T", sc.Change)
	assert.Nil(t, hw.HW.From)
	assert.True(t, hw.HW.To)

	_, combined := sc.Change.(HardwareAndSoftwareChange)
	assert.False(t, combined)
}

func TestDeviceEvent_PlainVariants(t *testing.T) {
	creation := decodeEvent(t, `"type":"creation"`)
	assert.Equal(t, EventTypeCreation, creation.Payload.Type())
	assert.Equal(t, "e1", creation.ID)
	assert.Equal(t, "d1", creation.DeviceID)
	assert.Equal(t, "o1", creation.OrganizationID)
	assert.Equal(t, "auth0|1", creation.Meta.CreatedBy)

	reboot := decodeEvent(t, `"type":"reboot"`)
	assert.Equal(t, RebootEvent{}, reboot.Payload)

	installation := decodeEvent(t, `"type":"installation","data":{"location":{"city":"Uppsala","address":"Storgatan 1","zipcode":"75320","coordinate":{"crs":"EPSG:3021","x":1602000.5,"y":6638000.25}}}`)
	rec := &recorder{}
	installation.Payload.Accept(rec)
	assert.Equal(t, "installation", rec.kind)
	assert.Equal(t, "Uppsala", rec.loc.City)
	assert.Nil(t, rec.loc.Placement)
	assert.Equal(t, CRSEPSG3021, rec.loc.Coordinate.CRS)
	assert.InDelta(t, 1602000.5, rec.loc.Coordinate.X, 1e-9)
}

func TestDeviceEvent_DecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		tail string
	}{
		{name: "unknown type", tail: `"type":"teleport"`},
		{name: "missing type", tail: `"data":{}`},
		{name: "status change without data", tail: `"type":"status-change"`},
		{name: "status change with neither flag", tail: `"type":"status-change","data":{}`},
		{name: "transition without to", tail: `"type":"status-change","data":{"hw":{"from":true}}`},
		{name: "installation without data", tail: `"type":"installation","data":null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e DeviceEvent
			err := json.Unmarshal([]byte(`{"id":"e1",`+eventMeta+`,`+tt.tail+`}`), &e)
			assert.Error(t, err)
		})
	}
}

func TestDeviceEvent_MarshalKeepsWireShape(t *testing.T) {
	from := false
	e := DeviceEvent{
		ID:             "e1",
		DeviceID:       "d1",
		OrganizationID: "o1",
		Payload: StatusChangeEvent{Change: HardwareAndSoftwareChange{
			HW: ValueTransition{From: &from, To: true},
			SW: ValueTransition{To: true},
		}},
	}

	data, err := json.Marshal(e)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "status-change", wire["type"])
	assert.Equal(t, map[string]any{
		"hw": map[string]any{"from": false, "to": true},
		"sw": map[string]any{"to": true},
	}, wire["data"])

	var back DeviceEvent
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, e.Payload, back.Payload)

	creation, err := json.Marshal(DeviceEvent{ID: "e2", Payload: CreationEvent{}})
	require.NoError(t, err)
	assert.NotContains(t, string(creation), `"data"`)

	_, err = json.Marshal(DeviceEvent{ID: "e3"})
	assert.Error(t, err)
}

func TestDeviceEventRequest_RoundTrip(t *testing.T) {
	placement := "Lobby, left of the entrance"
	req := DeviceEventRequest{
		DeviceID: "d1",
		Payload: InstallationEvent{Location: Location{
			City:       "Stockholm",
			Address:    "Drottninggatan 10",
			Placement:  &placement,
			Zipcode:    "11151",
			Coordinate: Coordinate{CRS: CRSWGS84, X: 18.06, Y: 59.33},
		}},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"device_id":"d1"`)
	assert.Contains(t, string(data), `"type":"installation"`)

	var back DeviceEventRequest
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, req, back)
}
