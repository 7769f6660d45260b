package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// Codec converts the state to and from the stored blob.
// Decode errors wrap domain.ErrMalformed, including a blob that decodes but
// carries no topics key (null, {}, or another app's value).
type Codec interface {
	Name() string
	Encode(s domain.State) ([]byte, error)
	Decode(b []byte) (domain.State, error)
}

// CodecByName returns the codec registered under name ("json" or "cbor").
func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSONCodec{}, nil
	case "cbor":
		return CBORCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// JSONCodec stores the state as JSON, the format the web client used.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(s domain.State) ([]byte, error) {
	b, err := json.Marshal(toDTO(s))
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return b, nil
}

func (JSONCodec) Decode(b []byte) (domain.State, error) {
	var dto stateDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return domain.State{}, fmt.Errorf("decode json: %w: %v", domain.ErrMalformed, err)
	}
	return toDomainState(dto)
}

// CBORCodec stores the state as CBOR (RFC 8949); smaller and faster to parse
// than JSON for large sheets.
type CBORCodec struct{}

func (CBORCodec) Name() string { return "cbor" }

func (CBORCodec) Encode(s domain.State) ([]byte, error) {
	b, err := cbor.Marshal(toDTO(s))
	if err != nil {
		return nil, fmt.Errorf("encode cbor: %w", err)
	}
	return b, nil
}

func (CBORCodec) Decode(b []byte) (domain.State, error) {
	var dto stateDTO
	if err := cbor.Unmarshal(b, &dto); err != nil {
		return domain.State{}, fmt.Errorf("decode cbor: %w: %v", domain.ErrMalformed, err)
	}
	return toDomainState(dto)
}
