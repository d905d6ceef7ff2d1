package itc

// Binary wire format. Multi-byte integers are network-endian with
// leading zeros elided; a length field always says how many bytes were
// kept.
//
// ID: one header byte per node in pre-order. 0x00 null leaf, 0x02 seed
// leaf, 0x01 parent (followed by the left then right subtree).
//
// Event: one header byte per node in pre-order. Bit 0 is the parent
// flag, bits 1-3 hold the counter byte length minus one (so 1..8 bytes
// of counter follow), bits 4-7 are reserved and must be zero. Parent
// nodes are followed by the left then right subtree.
//
// Stamp: one header byte whose bits 0-1 hold the byte length minus one
// of the ID-length field and bits 2-3 the same for the Event-length
// field (bits 4-7 reserved). Then: ID length, serialised ID, Event
// length, serialised Event.

// ID node headers
const (
	nullIDHeader   = 0x00
	parentIDHeader = 0x01
	seedIDHeader   = 0x02
)

// Event header fields
const (
	eventParentFlag      = 0x01
	eventCounterLenShift = 1
	eventCounterLenMask  = 0x07
	eventReservedMask    = 0xF0
)

// Stamp header fields
const (
	stampIDLenShift    = 0
	stampEventLenShift = 2
	stampLenMask       = 0x03
	stampReservedMask  = 0xF0
)

// uintLen returns the number of bytes needed for the network-endian
// encoding of v with leading zeros elided. Zero still takes one byte.
func uintLen(v uint64) int {
	n := 1
	for v >>= 8; v != 0; v >>= 8 {
		n++
	}
	return n
}

// putUint writes the low n bytes of v at buf[off:] in network order.
func putUint(buf []byte, off int, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		buf[off+i] = byte(v)
		v >>= 8
	}
}

// getUint reads n network-endian bytes at buf[off:].
func getUint(buf []byte, off, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(buf[off+i])
	}
	return v
}

// SerialisedSize returns the exact number of bytes Serialise produces.
func (i *ID) SerialisedSize() (int, error) {
	if err := i.Validate(); err != nil {
		return 0, err
	}
	return idSize(i), nil
}

func idSize(i *ID) int {
	if i.IsLeaf() {
		return 1
	}
	return 1 + idSize(i.left) + idSize(i.right)
}

// SerialiseInto writes the ID's wire form into buf and returns the
// number of bytes written. If buf is too small it returns
// ErrInsufficientResources and writes nothing.
func (i *ID) SerialiseInto(buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrInvalidParam
	}
	size, err := i.SerialisedSize()
	if err != nil {
		return 0, err
	}
	if len(buf) < size {
		return 0, ErrInsufficientResources
	}
	writeID(i, buf, 0)
	return size, nil
}

// Serialise returns the ID's wire form in a fresh buffer.
func (i *ID) Serialise() ([]byte, error) {
	size, err := i.SerialisedSize()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	writeID(i, buf, 0)
	return buf, nil
}

func writeID(i *ID, buf []byte, off int) int {
	switch {
	case i.IsNull():
		buf[off] = nullIDHeader
	case i.IsSeed():
		buf[off] = seedIDHeader
	default:
		buf[off] = parentIDHeader
		off = writeID(i.left, buf, off+1)
		return writeID(i.right, buf, off)
	}
	return off + 1
}

// DeserialiseID decodes an ID from its wire form. The buffer must hold
// exactly one serialised ID; truncated input, trailing bytes, unknown
// headers and denormalised trees all yield ErrCorruptID.
func DeserialiseID(buf []byte) (*ID, error) {
	if buf == nil {
		return nil, ErrInvalidParam
	}
	id, off, err := readID(buf, 0)
	if err != nil {
		return nil, err
	}
	if off != len(buf) {
		return nil, ErrCorruptID
	}
	if err := id.Validate(); err != nil {
		return nil, ErrCorruptID
	}
	return id, nil
}

func readID(buf []byte, off int) (*ID, int, error) {
	if off >= len(buf) {
		return nil, 0, ErrCorruptID
	}
	switch buf[off] {
	case nullIDHeader:
		return NewNullID(), off + 1, nil
	case seedIDHeader:
		return NewSeedID(), off + 1, nil
	case parentIDHeader:
		left, off, err := readID(buf, off+1)
		if err != nil {
			return nil, 0, err
		}
		right, off, err := readID(buf, off)
		if err != nil {
			return nil, 0, err
		}
		return parentID(left, right), off, nil
	default:
		return nil, 0, ErrCorruptID
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (i *ID) MarshalBinary() ([]byte, error) {
	return i.Serialise()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (i *ID) UnmarshalBinary(data []byte) error {
	id, err := DeserialiseID(data)
	if err != nil {
		return err
	}
	*i = *id
	return nil
}

// SerialisedSize returns the exact number of bytes Serialise produces.
func (e *Event) SerialisedSize() (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	return eventSize(e), nil
}

func eventSize(e *Event) int {
	n := 1 + uintLen(uint64(e.count))
	if !e.IsLeaf() {
		n += eventSize(e.left) + eventSize(e.right)
	}
	return n
}

// SerialiseInto writes the Event's wire form into buf and returns the
// number of bytes written. If buf is too small it returns
// ErrInsufficientResources and writes nothing.
func (e *Event) SerialiseInto(buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrInvalidParam
	}
	size, err := e.SerialisedSize()
	if err != nil {
		return 0, err
	}
	if len(buf) < size {
		return 0, ErrInsufficientResources
	}
	writeEvent(e, buf, 0)
	return size, nil
}

// Serialise returns the Event's wire form in a fresh buffer.
func (e *Event) Serialise() ([]byte, error) {
	size, err := e.SerialisedSize()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	writeEvent(e, buf, 0)
	return buf, nil
}

func writeEvent(e *Event, buf []byte, off int) int {
	n := uintLen(uint64(e.count))
	header := byte(n-1) << eventCounterLenShift
	if !e.IsLeaf() {
		header |= eventParentFlag
	}
	buf[off] = header
	putUint(buf, off+1, uint64(e.count), n)
	off += 1 + n
	if !e.IsLeaf() {
		off = writeEvent(e.left, buf, off)
		off = writeEvent(e.right, buf, off)
	}
	return off
}

// DeserialiseEvent decodes an Event from its wire form. The buffer must
// hold exactly one serialised Event. A counter wider than the built-in
// Counter type yields ErrUnsupportedCounterSize; any other malformation
// yields ErrCorruptEvent.
func DeserialiseEvent(buf []byte) (*Event, error) {
	if buf == nil {
		return nil, ErrInvalidParam
	}
	event, off, err := readEvent(buf, 0)
	if err != nil {
		return nil, err
	}
	if off != len(buf) {
		return nil, ErrCorruptEvent
	}
	if err := event.Validate(); err != nil {
		return nil, ErrCorruptEvent
	}
	return event, nil
}

func readEvent(buf []byte, off int) (*Event, int, error) {
	if off >= len(buf) {
		return nil, 0, ErrCorruptEvent
	}
	header := buf[off]
	if header&eventReservedMask != 0 {
		return nil, 0, ErrCorruptEvent
	}
	n := int(header>>eventCounterLenShift&eventCounterLenMask) + 1
	if n > counterBytes {
		return nil, 0, ErrUnsupportedCounterSize
	}
	if off+1+n > len(buf) {
		return nil, 0, ErrCorruptEvent
	}
	count := Counter(getUint(buf, off+1, n))
	off += 1 + n
	if header&eventParentFlag == 0 {
		return eventLeaf(count), off, nil
	}
	left, off, err := readEvent(buf, off)
	if err != nil {
		return nil, 0, err
	}
	right, off, err := readEvent(buf, off)
	if err != nil {
		return nil, 0, err
	}
	return eventNode(count, left, right), off, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Event) MarshalBinary() ([]byte, error) {
	return e.Serialise()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Event) UnmarshalBinary(data []byte) error {
	event, err := DeserialiseEvent(data)
	if err != nil {
		return err
	}
	*e = *event
	return nil
}

// SerialisedSize returns the exact number of bytes Serialise produces.
func (s *Stamp) SerialisedSize() (int, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	idBytes := idSize(s.id)
	eventBytes := eventSize(s.event)
	return 1 + uintLen(uint64(idBytes)) + idBytes +
		uintLen(uint64(eventBytes)) + eventBytes, nil
}

// SerialiseInto writes the Stamp's wire form into buf and returns the
// number of bytes written. If buf is too small it returns
// ErrInsufficientResources and writes nothing.
func (s *Stamp) SerialiseInto(buf []byte) (int, error) {
	if buf == nil {
		return 0, ErrInvalidParam
	}
	size, err := s.SerialisedSize()
	if err != nil {
		return 0, err
	}
	if len(buf) < size {
		return 0, ErrInsufficientResources
	}
	s.writeStamp(buf)
	return size, nil
}

// Serialise returns the Stamp's wire form in a fresh buffer.
func (s *Stamp) Serialise() ([]byte, error) {
	size, err := s.SerialisedSize()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	s.writeStamp(buf)
	return buf, nil
}

func (s *Stamp) writeStamp(buf []byte) {
	idBytes := idSize(s.id)
	eventBytes := eventSize(s.event)
	idLenLen := uintLen(uint64(idBytes))
	eventLenLen := uintLen(uint64(eventBytes))

	buf[0] = byte(idLenLen-1)<<stampIDLenShift |
		byte(eventLenLen-1)<<stampEventLenShift
	off := 1
	putUint(buf, off, uint64(idBytes), idLenLen)
	off += idLenLen
	off = writeID(s.id, buf, off)
	putUint(buf, off, uint64(eventBytes), eventLenLen)
	off += eventLenLen
	writeEvent(s.event, buf, off)
}

// DeserialiseStamp decodes a Stamp from its wire form. Deserialisation
// performs only basic validity checks; callers transporting stamps over
// unreliable media should protect them with an external checksum.
func DeserialiseStamp(buf []byte) (*Stamp, error) {
	if buf == nil {
		return nil, ErrInvalidParam
	}
	if len(buf) == 0 {
		return nil, ErrCorruptStamp
	}
	header := buf[0]
	if header&stampReservedMask != 0 {
		return nil, ErrCorruptStamp
	}
	idLenLen := int(header>>stampIDLenShift&stampLenMask) + 1
	eventLenLen := int(header>>stampEventLenShift&stampLenMask) + 1
	off := 1

	idBytes, off, err := readStampComponentLen(buf, off, idLenLen)
	if err != nil {
		return nil, err
	}
	id, err := DeserialiseID(buf[off : off+idBytes])
	if err != nil {
		return nil, err
	}
	off += idBytes

	eventBytes, off, err := readStampComponentLen(buf, off, eventLenLen)
	if err != nil {
		return nil, err
	}
	event, err := DeserialiseEvent(buf[off : off+eventBytes])
	if err != nil {
		return nil, err
	}
	off += eventBytes

	if off != len(buf) {
		return nil, ErrCorruptStamp
	}
	return &Stamp{id: id, event: event}, nil
}

// readStampComponentLen reads an n-byte component length and checks the
// component itself fits in the remaining buffer.
func readStampComponentLen(buf []byte, off, n int) (int, int, error) {
	if off+n > len(buf) {
		return 0, 0, ErrCorruptStamp
	}
	length := getUint(buf, off, n)
	off += n
	if length == 0 || length > uint64(len(buf)-off) {
		return 0, 0, ErrCorruptStamp
	}
	return int(length), off, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Stamp) MarshalBinary() ([]byte, error) {
	return s.Serialise()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Stamp) UnmarshalBinary(data []byte) error {
	stamp, err := DeserialiseStamp(data)
	if err != nil {
		return err
	}
	*s = *stamp
	return nil
}
