// Package bus is the message bridge between a running model and a host
// middleware.
//
// The host pushes subscribed messages in with WriteInput and drains
// advertised messages with ReadOutput; the model reads inputs and publishes
// outputs from inside its tick through SubscribeBlock and PublishBlock.
// Every message has a fixed byte length set when it is registered, and
// every operation reports a ReturnCode rather than panicking.
package bus

import (
	"fmt"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// ReturnCode is the result of a bus operation. The numeric values are part
// of the host interface and never change.
type ReturnCode int

const (
	Success               ReturnCode = 0
	MessageLengthMismatch ReturnCode = 1
	UnadvertisedMessage   ReturnCode = 2
	UnsubscribedMessage   ReturnCode = 3
	InvalidMessageIndex   ReturnCode = 4
	NullArgument          ReturnCode = 5
)

var returnCodeNames = map[ReturnCode]string{
	Success:               "Success",
	MessageLengthMismatch: "MessageLengthMismatch",
	UnadvertisedMessage:   "UnadvertisedMessage",
	UnsubscribedMessage:   "UnsubscribedMessage",
	InvalidMessageIndex:   "InvalidMessageIndex",
	NullArgument:          "NullArgument",
}

func (c ReturnCode) String() string {
	if name, ok := returnCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ReturnCode(%d)", int(c))
}

// IsSuccess reports whether c is Success.
func (c ReturnCode) IsSuccess() bool { return c == Success }

// Err converts a non-success code into an *Error for topic.
func (c ReturnCode) Err(topic string) error {
	if c == Success {
		return nil
	}
	return &Error{Code: c, Topic: topic}
}

// Error wraps a failed ReturnCode for callers that work with errors.
type Error struct {
	Code  ReturnCode
	Topic string
}

func (e *Error) Error() string {
	if e.Topic == "" {
		return "bus: " + e.Code.String()
	}
	return fmt.Sprintf("bus: %s (topic=%s)", e.Code, e.Topic)
}

type entry struct {
	topic   string
	data    []byte
	updated bool
}

// Bus holds the registered input and output messages. Registration order is
// preserved and defines message indices.
type Bus struct {
	mu      sync.RWMutex
	inputs  []*entry
	outputs []*entry
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{}
}

var (
	defaultOnce sync.Once
	defaultBus  *Bus
)

// Default returns the process-wide bus, creating it on first use.
func Default() *Bus {
	defaultOnce.Do(func() {
		defaultBus = New()
	})
	return defaultBus
}

// Topic normalizes a topic name to NFC so visually identical names match.
func Topic(name string) string {
	return norm.NFC.String(name)
}

func find(entries []*entry, topic string) *entry {
	for _, e := range entries {
		if e.topic == topic {
			return e
		}
	}
	return nil
}

func register(entries []*entry, topic string, size int) ([]*entry, ReturnCode) {
	if e := find(entries, topic); e != nil {
		if len(e.data) != size {
			return entries, MessageLengthMismatch
		}
		return entries, Success
	}
	return append(entries, &entry{topic: topic, data: make([]byte, size)}), Success
}

// Subscribe registers an input message of size bytes. Subscribing again
// with the same size is a no-op.
func (b *Bus) Subscribe(topic string, size int) ReturnCode {
	b.mu.Lock()
	defer b.mu.Unlock()
	var code ReturnCode
	b.inputs, code = register(b.inputs, Topic(topic), size)
	return code
}

// Advertise registers an output message of size bytes.
func (b *Bus) Advertise(topic string, size int) ReturnCode {
	b.mu.Lock()
	defer b.mu.Unlock()
	var code ReturnCode
	b.outputs, code = register(b.outputs, Topic(topic), size)
	return code
}

// WriteInput stores a message from the host. data must be exactly the
// subscribed size.
func (b *Bus) WriteInput(topic string, data []byte) ReturnCode {
	if data == nil {
		return NullArgument
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e := find(b.inputs, Topic(topic))
	if e == nil {
		return UnsubscribedMessage
	}
	if len(data) != len(e.data) {
		return MessageLengthMismatch
	}
	copy(e.data, data)
	e.updated = true
	return Success
}

// ReadInput copies the latest input message into dst and reports whether
// one has ever been written. Nothing is copied until the first write.
func (b *Bus) ReadInput(topic string, dst []byte) (n int, ok bool, code ReturnCode) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return readInput(b.inputs, Topic(topic), dst)
}

// TakeInput is ReadInput that also clears the updated flag, so the next
// call reports ok only after a fresh WriteInput.
func (b *Bus) TakeInput(topic string, dst []byte) (n int, ok bool, code ReturnCode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	topic = Topic(topic)
	n, ok, code = readInput(b.inputs, topic, dst)
	if ok {
		find(b.inputs, topic).updated = false
	}
	return n, ok, code
}

func readInput(inputs []*entry, topic string, dst []byte) (int, bool, ReturnCode) {
	e := find(inputs, topic)
	if e == nil {
		return 0, false, UnsubscribedMessage
	}
	if !e.updated {
		return 0, false, Success
	}
	if len(dst) < len(e.data) {
		return 0, false, MessageLengthMismatch
	}
	return copy(dst, e.data), true, Success
}

// Publish stores an output message from the model. data must be exactly the
// advertised size.
func (b *Bus) Publish(topic string, data []byte) ReturnCode {
	b.mu.Lock()
	defer b.mu.Unlock()
	e := find(b.outputs, Topic(topic))
	if e == nil {
		return UnadvertisedMessage
	}
	if len(data) != len(e.data) {
		return MessageLengthMismatch
	}
	copy(e.data, data)
	e.updated = true
	return Success
}

// InputCount returns the number of subscribed messages.
func (b *Bus) InputCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.inputs)
}

// InputID returns the topic of the subscribed message at index.
func (b *Bus) InputID(index int) (string, ReturnCode) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if index < 0 || index >= len(b.inputs) {
		return "", InvalidMessageIndex
	}
	return b.inputs[index].topic, Success
}

// OutputCount returns the number of advertised messages.
func (b *Bus) OutputCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.outputs)
}

// OutputID returns the topic of the advertised message at index.
func (b *Bus) OutputID(index int) (string, ReturnCode) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if index < 0 || index >= len(b.outputs) {
		return "", InvalidMessageIndex
	}
	return b.outputs[index].topic, Success
}

// OutputHasUpdate reports whether an output was published since the host
// last read it.
func (b *Bus) OutputHasUpdate(topic string) (bool, ReturnCode) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	e := find(b.outputs, Topic(topic))
	if e == nil {
		return false, UnadvertisedMessage
	}
	return e.updated, Success
}

// ReadOutput copies an output message into buf for the host and marks it
// read. buf must hold at least the advertised size.
func (b *Bus) ReadOutput(topic string, buf []byte) (int, ReturnCode) {
	if buf == nil {
		return 0, NullArgument
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	e := find(b.outputs, Topic(topic))
	if e == nil {
		return 0, UnadvertisedMessage
	}
	if len(buf) < len(e.data) {
		return 0, MessageLengthMismatch
	}
	n := copy(buf, e.data)
	e.updated = false
	return n, Success
}
