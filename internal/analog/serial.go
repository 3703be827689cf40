package analog

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the front-end firmware's fixed baud rate.
	DefaultBaudRate = 115200

	// readTimeout bounds a single conversion round trip. The front-end
	// answers in well under a millisecond; anything slower means the
	// board is gone.
	readTimeout = 2 * time.Second
)

// Serial reads samples from the analog front-end over a serial port.
// Protocol: the host sends "A<pin>\n", the front-end answers with the
// decimal reading followed by a newline.
type Serial struct {
	port serial.Port
	r    *bufio.Reader
}

// Open opens the serial port to the front-end.
func Open(portName string, baudRate int) (*Serial, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	mode := &serial.Mode{BaudRate: baudRate}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	return &Serial{
		port: port,
		r:    bufio.NewReader(port),
	}, nil
}

// Read requests one conversion from the given pin and waits for the
// answer.
func (s *Serial) Read(pin int) (uint16, error) {
	if _, err := fmt.Fprintf(s.port, "A%d\n", pin); err != nil {
		return 0, fmt.Errorf("request pin %d: %w", pin, err)
	}

	line, err := s.r.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("read pin %d: %w", pin, err)
	}

	v, err := parseReading(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("pin %d: %w", pin, err)
	}
	return v, nil
}

// Close closes the serial port.
func (s *Serial) Close() error {
	return s.port.Close()
}

// parseReading parses one response line into a raw sample.
func parseReading(line string) (uint16, error) {
	v, err := strconv.ParseUint(line, 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid reading %q: %w", line, err)
	}
	if v > MaxReading {
		return 0, fmt.Errorf("reading out of range: %d (max %d)", v, MaxReading)
	}
	return uint16(v), nil
}
