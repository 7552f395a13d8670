package util

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jpfielding/ppmtrans.go/pkg/grid"
)

// Md5ThenHex is a quick hasher
func Md5ThenHex(value []byte) string {
	hasher := md5.New()
	hasher.Write(value)
	return hex.EncodeToString(hasher.Sum(nil))
}

// HashUUID derives a stable uuid from the json form of value.
func HashUUID(value any) string {
	raw, err := json.Marshal(value)
	if err != nil {
		return ""
	}
	hasher := md5.New()
	hasher.Write(raw)
	hash := hasher.Sum(nil)
	id, err := uuid.FromBytes(hash[:16])
	if err != nil {
		return ""
	}
	return id.String()
}

// RunID tags one process run in the logs.
func RunID() string {
	return uuid.NewString()
}

// GridMd5 hashes the cells of g in row-major order, so two grids with equal
// content hash the same whatever their storage. T must be fixed-size for
// encoding/binary.
func GridMd5[T any](suite grid.Suite[T], g grid.Grid[T]) (string, error) {
	hasher := md5.New()
	err := suite.SmallMapRowMajor(g, func(elem *T) error {
		return binary.Write(hasher, binary.LittleEndian, elem)
	})
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
