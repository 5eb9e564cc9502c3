// internal/status/link.go
package status

// LinkState is the health of the Modbus link as observed by the last
// transaction.
type LinkState int

const (
	// Offline means the port was never opened or was explicitly closed.
	Offline LinkState = iota

	// Online means the last transaction succeeded.
	Online

	// TransportError means the last transaction failed (serial I/O error
	// or malformed response) but the link object still exists.
	TransportError
)

// String returns the status string the dashboard consumes. The values
// are a compatibility contract and MUST NOT change.
func (s LinkState) String() string {
	switch s {
	case Online:
		return "online"
	case TransportError:
		return "mb-offline"
	default:
		return "offline"
	}
}
