package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
)

var (
	ErrUnauthenticated   = errors.New("authentication required")
	ErrAccessDenied      = errors.New("access denied")
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderNumberTaken  = errors.New("order number already taken")
	ErrInvalidOrder      = errors.New("invalid order data")
)

func (o *OrderDetails) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *OrderDetails) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(o); err != nil {
		return errors.Join(ErrInvalidOrder, err)
	}
	return nil
}

func init() {
	gob.Register(OrderDetails{})
	gob.Register(Order{})
	gob.Register(ItemWithProduct{})
}
