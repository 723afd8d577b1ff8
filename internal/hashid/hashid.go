package hashid

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidID = errors.New("invalid id")

// Codec переводит внутренние числовые id в непрозрачные строки и обратно.
type Codec struct {
	h *hashids.HashID
}

func New(salt string, minLength int) (*Codec, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = minLength

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("failed to create hashids: %w", err)
	}
	return &Codec{h: h}, nil
}

// Encode паникует на отрицательном id: id приходят из bigserial и отрицательными не бывают.
func (c *Codec) Encode(id int64) string {
	s, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		panic(fmt.Errorf("hashid: encode %d: %w", id, err))
	}
	return s
}

func (c *Codec) Decode(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidID
	}
	ids, err := c.h.DecodeInt64WithError(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("%w: expected single value, got %d", ErrInvalidID, len(ids))
	}
	return ids[0], nil
}
