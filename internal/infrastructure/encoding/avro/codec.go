package avro

import (
	"fmt"
	"sync"

	"github.com/linkedin/goavro/v2"

	"giftshop/internal/domain/order"
)

// Codec wraps a goavro codec for thread-safe order encoding and
// decoding.
type Codec struct {
	codec *goavro.Codec
	mu    sync.Mutex
}

// NewCodec builds the codec from OrderEventSchema.
func NewCodec() (*Codec, error) {
	codec, err := goavro.NewCodec(OrderEventSchema)
	if err != nil {
		return nil, fmt.Errorf("create avro codec: %w", err)
	}
	return &Codec{codec: codec}, nil
}

// EncodeOrder converts an order record to Avro binary.
func (c *Codec) EncodeOrder(rec *order.Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("record is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	binary, err := c.codec.BinaryFromNative(nil, toNative(rec))
	if err != nil {
		return nil, fmt.Errorf("encode order to avro: %w", err)
	}
	return binary, nil
}

// DecodeOrder converts Avro binary back into an order record.
func (c *Codec) DecodeOrder(data []byte) (*order.Record, error) {
	c.mu.Lock()
	native, _, err := c.codec.NativeFromBinary(data)
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("decode avro order: %w", err)
	}

	m, ok := native.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected avro native type %T", native)
	}
	return fromNative(m)
}
