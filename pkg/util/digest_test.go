package util

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/ppmtrans.go/pkg/grid/blocked"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/plain"
)

func TestMd5ThenHex(t *testing.T) {
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", Md5ThenHex(nil))
}

func TestHashUUID_Stable(t *testing.T) {
	a := HashUUID(map[string]int{"w": 5, "h": 3})
	b := HashUUID(map[string]int{"w": 5, "h": 3})
	c := HashUUID(map[string]int{"w": 3, "h": 5})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	_, err := uuid.Parse(a)
	assert.NoError(t, err)
}

func TestRunID_Unique(t *testing.T) {
	assert.NotEqual(t, RunID(), RunID())
}

func TestGridMd5_StorageIndependent(t *testing.T) {
	ps := plain.Methods[uint32]()
	bs := blocked.Methods[uint32]()
	p, err := ps.New(5, 3)
	require.NoError(t, err)
	b, err := bs.NewWithBlocksize(5, 3, 2)
	require.NoError(t, err)
	for row := 0; row < 3; row++ {
		for col := 0; col < 5; col++ {
			v := uint32(row*5 + col)
			slot, err := ps.At(p, col, row)
			require.NoError(t, err)
			*slot = v
			slot, err = bs.At(b, col, row)
			require.NoError(t, err)
			*slot = v
		}
	}
	hp, err := GridMd5(ps, p)
	require.NoError(t, err)
	hb, err := GridMd5(bs, b)
	require.NoError(t, err)
	assert.Equal(t, hp, hb)
}
