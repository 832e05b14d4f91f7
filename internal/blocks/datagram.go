package blocks

import (
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// DatagramTransmitParams names the destination, as host:port.
type DatagramTransmitParams struct {
	Destination string
}

// Sender delivers a datagram to a destination.
type Sender interface {
	Send(destination string, payload []byte) error
}

// DatagramTransmit copies its input into a block-owned buffer and passes it
// through. Nothing is sent during the tick; Flush hands the buffer to a
// Sender afterwards so network latency never lands inside the step.
type DatagramTransmit struct {
	buf     signal.ByteStream
	pending bool
}

func (b *DatagramTransmit) Process(_ *DatagramTransmitParams, _ block.Context, in []byte) []byte {
	b.buf.Set(in)
	b.pending = true
	return b.buf.Bytes()
}

// Flush sends the buffered payload once. Calls without a new Process are
// no-ops.
func (b *DatagramTransmit) Flush(p *DatagramTransmitParams, s Sender) error {
	if !b.pending {
		return nil
	}
	b.pending = false
	return s.Send(p.Destination, b.buf.Bytes())
}

func (b *DatagramTransmit) Snapshot() signal.Data { return signal.BytesData(b.buf.Bytes()) }

// UDPSender sends datagrams over UDP, dialing each destination once.
type UDPSender struct {
	mu    sync.Mutex
	conns map[string]net.Conn
}

// NewUDPSender creates a sender with no open sockets.
func NewUDPSender() *UDPSender {
	return &UDPSender{conns: make(map[string]net.Conn)}
}

// Send implements Sender.
func (s *UDPSender) Send(destination string, payload []byte) error {
	s.mu.Lock()
	conn, ok := s.conns[destination]
	if !ok {
		c, err := net.Dial("udp", destination)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("dial %s: %w", destination, err)
		}
		slog.Debug("udp sender connected", "destination", destination)
		s.conns[destination] = c
		conn = c
	}
	s.mu.Unlock()
	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("send to %s: %w", destination, err)
	}
	return nil
}

// Close closes every socket.
func (s *UDPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for dest, c := range s.conns {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
		delete(s.conns, dest)
	}
	return first
}
