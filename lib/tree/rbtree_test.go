package tree

import (
	randv2 "math/rand"
	"sort"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

type checkData struct {
	color RBColor
	key   uint64
}

func requireTreeShape(t *testing.T, m TreeMap[uint64, uint64], expected []checkData) {
	t.Helper()
	n := int64(0)
	m.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, expected[idx].color, color)
		require.Equal(t, expected[idx].key, key)
		n++
		return true
	})
	require.Equal(t, int64(len(expected)), n)
	require.NoError(t, Validate[uint64, uint64](m, nil))
}

func TestNilNodeView(t *testing.T) {
	var nilNode RBNode[uint64, uint64] = nil
	require.True(t, nilNode == nil)

	m := NewTreeMap[uint64, uint64]()
	require.True(t, m.Root() == nil)
	require.True(t, m.Min() == nil)
	require.True(t, m.Max() == nil)
}

func TestTreeMapRotations_BorrowPred(t *testing.T) {
	m := NewTreeMap[uint64, uint64](WithTreeMapBorrowPred[uint64, uint64]())

	_, _, err := m.Put(52, 1)
	require.NoError(t, err)
	requireTreeShape(t, m, []checkData{
		{Black, 52},
	})

	_, _, err = m.Put(47, 1)
	require.NoError(t, err)
	requireTreeShape(t, m, []checkData{
		{Red, 47}, {Black, 52},
	})

	_, _, err = m.Put(3, 1)
	require.NoError(t, err)
	requireTreeShape(t, m, []checkData{
		{Red, 3}, {Black, 47}, {Red, 52},
	})

	_, _, err = m.Put(35, 1)
	require.NoError(t, err)
	requireTreeShape(t, m, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	_, _, err = m.Put(24, 1)
	require.NoError(t, err)
	requireTreeShape(t, m, []checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	// remove

	v, ok := m.Remove(24)
	require.True(t, ok)
	require.Equal(t, uint64(1), v)
	requireTreeShape(t, m, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	v, ok = m.Remove(47)
	require.True(t, ok)
	require.Equal(t, uint64(1), v)
	requireTreeShape(t, m, []checkData{
		{Black, 3},
		{Black, 35},
		{Black, 52},
	})

	v, ok = m.Remove(52)
	require.True(t, ok)
	require.Equal(t, uint64(1), v)
	requireTreeShape(t, m, []checkData{
		{Red, 3}, {Black, 35},
	})

	v, ok = m.Remove(3)
	require.True(t, ok)
	require.Equal(t, uint64(1), v)
	requireTreeShape(t, m, []checkData{
		{Black, 35},
	})

	v, ok = m.Remove(35)
	require.True(t, ok)
	require.Equal(t, uint64(1), v)
	require.Equal(t, int64(0), m.Len())
	require.True(t, m.IsEmpty())
	require.True(t, m.Root() == nil)
}

func treeMapRandomInsertAndRemoveSequentialNumberRunCore(t *testing.T, rmBorrowPred bool) {
	total := uint64(1000)
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	opts := make([]TreeMapOpt[uint64, uint64], 0, 1)
	if rmBorrowPred {
		opts = append(opts, WithTreeMapBorrowPred[uint64, uint64]())
	}
	m := NewTreeMap[uint64, uint64](opts...)

	for i := uint64(0); i < insertTotal; i++ {
		_, _, err := m.Put(i, 1)
		require.NoError(t, err)
		require.NoError(t, Validate[uint64, uint64](m, nil))
	}
	m.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		_, _, err := m.Put(i, 1)
		require.NoError(t, err)
		require.NoError(t, Validate[uint64, uint64](m, nil))
	}

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		if i == 892 {
			x := m.Search(m.Root(), func(node RBNode[uint64, uint64]) int64 {
				if i == node.Key() {
					return 0
				} else if i < node.Key() {
					return -1
				}
				return 1
			})
			require.Equal(t, uint64(892), x.Key())
		}
		v, ok := m.Remove(i)
		require.True(t, ok)
		require.Equal(t, uint64(1), v)
		require.NoError(t, Validate[uint64, uint64](m, nil))
	}
	m.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
	require.Equal(t, int64(insertTotal), m.Len())
}

func TestTreeMapRandomInsertAndRemove_SequentialNumber(t *testing.T) {
	type testcase struct {
		name         string
		rmBorrowPred bool
	}
	testcases := []testcase{
		{
			name: "rm by succ",
		},
		{
			name:         "rm by pred",
			rmBorrowPred: true,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			treeMapRandomInsertAndRemoveSequentialNumberRunCore(tt, tc.rmBorrowPred)
		})
	}
}

func TestTreeMapRandomInsertAndRemove_ReverseSequentialNumber(t *testing.T) {
	total := int64(10000)
	insertTotal := int64(float64(total) * 0.8)

	m := NewTreeMap[int64, uint64](WithTreeMapDesc[int64, uint64]())
	descCmp := func(i, j int64) int64 {
		if i == j {
			return 0
		} else if i < j {
			return 1
		}
		return -1
	}

	rand := int64(randv2.Uint32() % 1_000)
	for i := insertTotal - 1; i >= 0; i-- {
		_, _, err := m.Put(i, 1)
		require.NoError(t, err)
		if i%1000 == rand {
			require.NoError(t, Validate[int64, uint64](m, descCmp))
		}
	}
	m.Foreach(func(idx int64, color RBColor, key int64, val uint64) bool {
		require.Equal(t, insertTotal-1-idx, key)
		return true
	})

	for i := int64(0); i < insertTotal; i += 2 {
		v, ok := m.Remove(i)
		require.True(t, ok)
		require.Equal(t, uint64(1), v)
		if i%1000 == rand {
			require.NoError(t, Validate[int64, uint64](m, descCmp))
		}
	}
	require.Equal(t, insertTotal/2, m.Len())
	require.NoError(t, Validate[int64, uint64](m, descCmp))
}

func treeMapRandomInsertAndRemoveRunCore(t *testing.T, total uint64, rmBorrowPred bool, violationCheck bool) {
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	keys := make([]uint64, 0, total)
	for i := uint64(0); i < total; i++ {
		keys = append(keys, i)
	}
	keys = lo.Shuffle(keys)
	insertElements := keys[:insertTotal]
	removeElements := keys[insertTotal:]

	opts := make([]TreeMapOpt[uint64, uint64], 0, 1)
	if rmBorrowPred {
		opts = append(opts, WithTreeMapBorrowPred[uint64, uint64]())
	}
	m := NewTreeMap[uint64, uint64](opts...)

	for i := uint64(0); i < insertTotal; i++ {
		_, _, err := m.Put(insertElements[i], i)
		require.NoError(t, err)
		if violationCheck {
			require.NoError(t, Validate[uint64, uint64](m, nil))
		}
	}

	sorted := make([]uint64, len(insertElements))
	copy(sorted, insertElements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	m.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, sorted[idx], key)
		return true
	})

	for i := uint64(0); i < removeTotal; i++ {
		_, _, err := m.Put(removeElements[i], 1)
		require.NoError(t, err)
		if violationCheck {
			require.NoError(t, Validate[uint64, uint64](m, nil))
		}
	}
	require.NoError(t, Validate[uint64, uint64](m, nil))

	for i := uint64(0); i < removeTotal; i++ {
		v, ok := m.Remove(removeElements[i])
		require.True(t, ok)
		require.Equal(t, uint64(1), v)
		if violationCheck {
			require.NoError(t, Validate[uint64, uint64](m, nil))
		}
	}
	m.Foreach(func(idx int64, color RBColor, key uint64, val uint64) bool {
		require.Equal(t, sorted[idx], key)
		return true
	})
}

func TestTreeMapRandomInsertAndRemove_ShuffledNumber(t *testing.T) {
	type testcase struct {
		name           string
		rmBorrowPred   bool
		total          uint64
		violationCheck bool
	}
	testcases := []testcase{
		{
			name:  "rm by succ 100000",
			total: 100000,
		},
		{
			name:         "rm by pred 100000",
			rmBorrowPred: true,
			total:        100000,
		},
		{
			name:           "violation check rm by succ 10000",
			total:          10000,
			violationCheck: true,
		},
		{
			name:           "violation check rm by pred 10000",
			rmBorrowPred:   true,
			total:          10000,
			violationCheck: true,
		},
	}
	t.Parallel()
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			treeMapRandomInsertAndRemoveRunCore(tt, tc.total, tc.rmBorrowPred, tc.violationCheck)
		})
	}
}

func TestTreeMapRoundTripToEmpty(t *testing.T) {
	const total = 512
	keys := lo.Shuffle(lo.RangeFrom(uint64(1), total))

	m := NewTreeMap[uint64, uint64]()
	for _, k := range keys {
		_, _, err := m.Put(k, k*2)
		require.NoError(t, err)
	}
	require.Equal(t, int64(total), m.Len())

	for _, k := range lo.Shuffle(keys) {
		v, ok := m.Remove(k)
		require.True(t, ok)
		require.Equal(t, k*2, v)
		require.NoError(t, Validate[uint64, uint64](m, nil))
	}
	require.Equal(t, int64(0), m.Len())
	require.True(t, m.IsEmpty())
	require.True(t, m.Root() == nil)
	require.True(t, m.Min() == nil)
	require.True(t, m.Max() == nil)
}

func BenchmarkTreeMap_Random(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	m := NewTreeMap[int, []byte]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := m.Put(rngArr[i], testByBytes)
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkTreeMap_Serial(b *testing.B) {
	testByBytes := []byte(`abc`)

	b.StopTimer()
	m := NewTreeMap[int, []byte]()

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = m.Put(i, testByBytes)
	}
}
