// internal/transport/link.go
package transport

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/goburrow/serial"
)

// SerialConfig holds the fixed parameters of the physical port.
type SerialConfig struct {
	Device   string
	BaudRate int
	DataBits int
	Parity   string // "N", "E" or "O"
	StopBits int
	Timeout  time.Duration // blocking read timeout
}

// Dialer opens one connection attempt to the device.
type Dialer func() (io.ReadWriteCloser, error)

// SerialDialer returns a Dialer backed by a real serial port.
func SerialDialer(cfg SerialConfig) Dialer {
	return func() (io.ReadWriteCloser, error) {
		return serial.Open(&serial.Config{
			Address:  cfg.Device,
			BaudRate: cfg.BaudRate,
			DataBits: cfg.DataBits,
			Parity:   cfg.Parity,
			StopBits: cfg.StopBits,
			Timeout:  cfg.Timeout,
		})
	}
}

// Link owns the physical connection. It is never used concurrently: the
// Transport serializes every operation.
type Link struct {
	mu   sync.Mutex
	dial Dialer
	port io.ReadWriteCloser
}

func NewLink(dial Dialer) *Link {
	return &Link{dial: dial}
}

// Open (re)establishes the connection. An already-open port is closed
// first. On failure the link stays closed.
func (l *Link) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port != nil {
		l.port.Close()
		l.port = nil
	}

	port, err := l.dial()
	if err != nil {
		return err
	}
	l.port = port
	return nil
}

// Close is idempotent and always safe to call.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.port == nil {
		return nil
	}
	err := l.port.Close()
	l.port = nil
	return err
}

// IsOpen reports whether a connection currently exists.
func (l *Link) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil
}

func (l *Link) write(p []byte) error {
	l.mu.Lock()
	port := l.port
	l.mu.Unlock()

	if port == nil {
		return errors.New("link: not open")
	}

	written := 0
	for written < len(p) {
		n, err := port.Write(p[written:])
		if err != nil {
			return err
		}
		written += n
	}
	return nil
}

func (l *Link) read(p []byte) (int, error) {
	l.mu.Lock()
	port := l.port
	l.mu.Unlock()

	if port == nil {
		return 0, errors.New("link: not open")
	}
	return port.Read(p)
}
