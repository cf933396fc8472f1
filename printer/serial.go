package printer

import (
	"github.com/tarm/serial"
)

// Open connects to printer firmware on the named serial device.
func Open(device string, baud int) (*Conn, error) {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return nil, err
	}
	return NewConn(port), nil
}
