package schema

import (
	"bytes"

	"github.com/fxamacker/cbor/v2"
	"github.com/xugejunllt/nft-auction-market/domain"
	"github.com/xugejunllt/nft-auction-market/domain/registry"
	"golang.org/x/xerrors"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	encOpts := cbor.CanonicalEncOptions()
	encOpts.Time = cbor.TimeRFC3339Nano
	em, err := encOpts.EncMode()
	if err != nil {
		panic(err)
	}
	encMode = em

	// a field the target layout cannot hold means the target is not a superset
	dm, err := cbor.DecOptions{ExtraReturnErrors: cbor.ExtraDecErrorUnknownField}.DecMode()
	if err != nil {
		panic(err)
	}
	decMode = dm
}

// Encode is the canonical snapshot of s, equal storages encode to equal bytes
func Encode(s Storage) ([]byte, error) {
	return encMode.Marshal(s)
}

// Clone deep copies s through its snapshot
func Clone(s Storage) (Storage, error) {
	dst := empty(s.SchemaVersion())
	if dst == nil {
		return nil, domain.ErrUnsupportedVersion
	}
	if err := convert(s, dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// Migrate copies src into the layout of version to. The shared layout must come out
// bit-identical, otherwise ErrStorageIncompatible and src is left untouched.
func Migrate(src Storage, to registry.SchemaVersion) (Storage, error) {
	from := src.SchemaVersion()
	if to == from {
		return nil, xerrors.Errorf("already at schema %d: %w", to, domain.ErrUnsupportedVersion)
	}
	if to < from {
		return nil, xerrors.Errorf("downgrade %d to %d: %w", from, to, domain.ErrStorageIncompatible)
	}

	dst := empty(to)
	if dst == nil {
		return nil, xerrors.Errorf("schema %d: %w", to, domain.ErrUnsupportedVersion)
	}
	if err := convert(src, dst); err != nil {
		return nil, err
	}
	if v2, ok := dst.(*StorageV2); ok {
		v2.initDefaults()
	}
	return dst, nil
}

func empty(v registry.SchemaVersion) Storage {
	switch v {
	case registry.SchemaV1:
		return &StorageV1{}
	case registry.SchemaV2:
		return &StorageV2{}
	}
	return nil
}

func convert(src, dst Storage) error {
	raw, err := encMode.Marshal(src)
	if err != nil {
		return xerrors.Errorf("encode schema %d: %w", src.SchemaVersion(), err)
	}
	if err := decMode.Unmarshal(raw, dst); err != nil {
		return xerrors.Errorf("decode into schema %d: %v: %w", dst.SchemaVersion(), err, domain.ErrStorageIncompatible)
	}

	before, err := encMode.Marshal(src.Base())
	if err != nil {
		return xerrors.Errorf("encode base: %w", err)
	}
	after, err := encMode.Marshal(dst.Base())
	if err != nil {
		return xerrors.Errorf("encode base: %w", err)
	}
	if !bytes.Equal(before, after) {
		return xerrors.Errorf("shared layout changed: %w", domain.ErrStorageIncompatible)
	}
	return nil
}
