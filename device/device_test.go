package device

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flexit/flexit-bacnet/bacnet"
)

// stubUnit emulates a Flexit unit just well enough to exercise the
// façade end to end: ReadPropertyMultiple always returns a fixed
// ComplexAck covering the device object, OutsideAirTemperature and
// ComfortButton; WriteProperty always returns a SimpleAck.
func stubUnit(t *testing.T) (addr string, stop func()) {
	t.Helper()
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		buf := make([]byte, 1500)
		for {
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			n, from, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			frame := buf[:n]
			var reply []byte
			if len(frame) > 9 && frame[9] == 0x0f { // WriteProperty
				reply = simpleAckFrame()
			} else {
				reply = stubReadResponse()
			}
			conn.WriteToUDP(reply, from)
			select {
			case <-done:
				return
			default:
			}
		}
	}()

	return conn.LocalAddr().String(), func() {
		close(done)
		conn.Close()
	}
}

func wrapFrame(npduControl byte, apdu []byte) []byte {
	total := 6 + len(apdu)
	frame := make([]byte, 0, total)
	frame = append(frame, 0x81, 0x0a, byte(total>>8), byte(total))
	frame = append(frame, 0x01, npduControl)
	frame = append(frame, apdu...)
	return frame
}

func simpleAckFrame() []byte {
	return wrapFrame(0x00, []byte{0x20, 0x01, 0x0f})
}

// stubReadResponse builds a ComplexAck covering Device:5 (ObjectName
// "Flexit", Description "SN123"), AnalogInput:1 = 14.5 (Real), and
// BinaryValue:50 = 1 (Enumerated, Active) — enough surface to exercise
// DeviceName, SerialNumber, OutsideAirTemperature and ComfortButton
// without transcribing the entire catalogue.
func stubReadResponse() []byte {
	apdu := []byte{0x30, 0x01, 0x0e}

	// Device:5 { ObjectName: "Flexit", Description: "SN123" }
	apdu = append(apdu, 0x0c, 0x02, 0x00, 0x00, 0x05)
	apdu = append(apdu, 0x1e)
	apdu = append(apdu, 0x29, 0x4d, 0x4e, 0x77, 0x00, 'F', 'l', 'e', 'x', 'i', 't', 0x4f)
	apdu = append(apdu, 0x29, 0x1c, 0x4e, 0x76, 0x00, 'S', 'N', '1', '2', '3', 0x4f)
	apdu = append(apdu, 0x1f)

	// AnalogInput:1 { PresentValue: 14.5 }
	apdu = append(apdu, 0x0c, 0x00, 0x00, 0x00, 0x01)
	apdu = append(apdu, 0x1e)
	apdu = append(apdu, 0x29, 0x55, 0x4e, 0x44, 0x41, 0x68, 0x00, 0x00, 0x4f)
	apdu = append(apdu, 0x1f)

	// BinaryValue:50 { PresentValue: Active(1) }
	apdu = append(apdu, 0x0c, 0x01, 0x40, 0x00, 0x32)
	apdu = append(apdu, 0x1e)
	apdu = append(apdu, 0x29, 0x55, 0x4e, 0x91, 0x01, 0x4f)
	apdu = append(apdu, 0x1f)

	return wrapFrame(0x04, apdu)
}

func newTestDevice(t *testing.T, addr string) *FlexitDevice {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return New(host, port, 5, bacnet.WithTimeout(500*time.Millisecond))
}

func TestUpdateAndAccessors(t *testing.T) {
	addr, stop := stubUnit(t)
	defer stop()

	d := newTestDevice(t, addr)
	require.NoError(t, d.Update(context.Background()))

	name, err := d.DeviceName()
	require.NoError(t, err)
	assert.Equal(t, "Flexit", name)

	serial, err := d.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "SN123", serial)

	temp, err := d.OutsideAirTemperature()
	require.NoError(t, err)
	assert.Equal(t, 14.5, temp)

	cb, err := d.ComfortButton()
	require.NoError(t, err)
	assert.Equal(t, bacnet.Active, cb)

	// RoomTemperature was never part of the stub response.
	_, err = d.RoomTemperature()
	assert.ErrorIs(t, err, ErrNotUpdated)
}

func TestAccessorsBeforeUpdateReturnErrNotUpdated(t *testing.T) {
	d := New("127.0.0.1", 47808, 5)
	_, err := d.DeviceName()
	assert.ErrorIs(t, err, ErrNotUpdated)
	_, err = d.OutsideAirTemperature()
	assert.ErrorIs(t, err, ErrNotUpdated)
}

func TestDeactivateComfortButtonValidatesDelayRange(t *testing.T) {
	d := New("127.0.0.1", 47808, 5)
	err := d.DeactivateComfortButton(context.Background(), 601)
	require.Error(t, err)
	var invalid *bacnet.InvalidArgument
	assert.ErrorAs(t, err, &invalid)
}

func TestStartFireplaceVentilationValidatesMinutesRange(t *testing.T) {
	d := New("127.0.0.1", 47808, 5)
	err := d.StartFireplaceVentilation(context.Background(), 0)
	require.Error(t, err)
	var invalid *bacnet.InvalidArgument
	assert.ErrorAs(t, err, &invalid)

	err = d.StartRapidVentilation(context.Background(), 361)
	require.Error(t, err)
	assert.ErrorAs(t, err, &invalid)
}

func TestActivateComfortButtonWritesThenRefreshes(t *testing.T) {
	addr, stop := stubUnit(t)
	defer stop()

	d := newTestDevice(t, addr)
	err := d.ActivateComfortButton(context.Background())
	require.NoError(t, err)

	cb, err := d.ComfortButton()
	require.NoError(t, err)
	assert.Equal(t, bacnet.Active, cb)
}

func TestIsValidReportsFalseOnTransportError(t *testing.T) {
	d := New("127.0.0.1", 1, 5, bacnet.WithTimeout(200*time.Millisecond))
	ok, err := d.IsValid(context.Background())
	assert.False(t, ok)
	assert.NoError(t, err)
}
