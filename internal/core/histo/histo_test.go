package histo

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxis(t *testing.T) {
	_, err := NewAxis(0, 0, 1)
	require.Error(t, err)
	_, err = NewAxis(4, 1, 1)
	require.Error(t, err)

	ax, err := NewAxis(4, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, ax.Find(-0.1))
	assert.Equal(t, 1, ax.Find(0))
	assert.Equal(t, 2, ax.Find(0.5))
	assert.Equal(t, 4, ax.Find(1.99))
	assert.Equal(t, 5, ax.Find(2))
	assert.Equal(t, 5, ax.Find(math.NaN()))
	assert.Equal(t, 5, ax.Find(math.Inf(1)))
	assert.Equal(t, 0, ax.Find(math.Inf(-1)))
	assert.InDelta(t, 0.25, ax.Center(1), 1e-12)
	assert.InDelta(t, 1.5, ax.LowEdge(4), 1e-12)
}

func TestH1_FillNaNGoesToOverflow(t *testing.T) {
	h, err := NewH1("q", "", 4, 0, 4)
	require.NoError(t, err)
	require.NotPanics(t, func() { h.Fill(math.NaN()) })
	assert.Equal(t, 1.0, h.Content(5))
	assert.Zero(t, h.Integral())
}

func TestH1_FillAndStats(t *testing.T) {
	h, err := NewH1("q", "q", 10, 0, 10)
	require.NoError(t, err)
	h.Fill(0.5)
	h.FillW(2.5, 3)
	h.Fill(42) // overflow

	assert.Equal(t, int64(3), h.Entries)
	assert.Equal(t, 1.0, h.Content(1))
	assert.Equal(t, 3.0, h.Content(3))
	assert.Equal(t, 1.0, h.Content(11))
	assert.InDelta(t, 3.0, h.Error(3), 1e-12)
	assert.Equal(t, 4.0, h.Integral())
	assert.InDelta(t, (0.5+3*2.5)/4, h.Mean(), 1e-12)

	h.SetContent(2, 7, 0.5)
	assert.Equal(t, 7.0, h.Content(2))
	assert.InDelta(t, 0.5, h.Error(2), 1e-12)

	h.Reset()
	assert.Zero(t, h.Integral())
	assert.Zero(t, h.Entries)
}

func TestProfile_MeanSurvivesMerge(t *testing.T) {
	a, err := NewProfile("flags", "", 3, 0, 3)
	require.NoError(t, err)
	b := a.Clone().(*Profile)
	a.FillBin(1, 2)
	b.FillBin(1, 2)
	b.FillBin(2, 4)
	b.FillBin(2, 6)
	require.NoError(t, a.Add(b))

	assert.Equal(t, 2.0, a.Mean(1))
	assert.Equal(t, 5.0, a.Mean(2))
	assert.InDelta(t, 1.0, a.Spread(2), 1e-12)
	assert.Zero(t, a.Mean(3))
}

func TestH2_Fill(t *testing.T) {
	h, err := NewH2("qm", "", 2, 0, 2, 3, 0, 3)
	require.NoError(t, err)
	h.Fill(1.5, 0.5)
	h.FillW(1.5, 0.5, 2)
	assert.Equal(t, 3.0, h.Content(2, 1))
	assert.InDelta(t, 2.2360679, h.Error(2, 1), 1e-6)

	other, _ := NewH2("qm", "", 2, 0, 2, 4, 0, 3)
	assert.False(t, h.SameBinning(other))
	assert.Error(t, h.Add(other))
}

func build(t *testing.T, fill float64) *List {
	t.Helper()
	l := NewList("cobj")
	h, err := NewH1("q", "", 4, 0, 4)
	require.NoError(t, err)
	h.Fill(fill)
	p, err := NewProfile("flags", "", 2, 0, 2)
	require.NoError(t, err)
	p.FillBin(1, 2)
	require.NoError(t, l.Add(h))
	require.NoError(t, l.Add(p))
	return l
}

func TestList_AddGetMerge(t *testing.T) {
	l := build(t, 1.5)
	assert.Error(t, l.Add(l.H1("q").Clone()))
	assert.Equal(t, []string{"q", "flags"}, l.Names())
	assert.Nil(t, l.H2("q"))
	assert.NotNil(t, l.Profile("flags"))

	extra, _ := NewH1("mult", "", 2, 0, 2)
	other := build(t, 2.5)
	require.NoError(t, other.Add(extra))

	merged, err := MergeAll("sum", l, nil, other)
	require.NoError(t, err)
	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, 2.0, merged.H1("q").Integral())
	assert.Equal(t, 2.0, merged.Profile("flags").Mean(1))
	// inputs are untouched
	assert.Equal(t, 1.0, l.H1("q").Integral())

	bad := NewList("bad")
	h2, _ := NewH2("q", "", 1, 0, 1, 1, 0, 1)
	require.NoError(t, bad.Add(h2))
	_, err = MergeAll("sum", l, bad)
	assert.ErrorContains(t, err, "kind h1 cannot take h2")
}

func TestCodec_RoundTrip(t *testing.T) {
	l := build(t, 3.2)
	l.H1("q").SetLabel(2, "two")
	h2, _ := NewH2("qm", "", 2, 0, 2, 2, 0, 2)
	h2.Fill(0.5, 1.5)
	require.NoError(t, l.Add(h2))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, l))
	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, l.Names(), got.Names())
	assert.Equal(t, l.H1("q"), got.H1("q"))
	assert.Equal(t, 1.0, got.H2("qm").Content(1, 2))

	path := filepath.Join(t.TempDir(), "out.hz")
	require.NoError(t, WriteFile(path, got))
	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cobj", back.Name)
	assert.Equal(t, 2.0, back.Profile("flags").Mean(1))
}

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not zstd")))
	assert.Error(t, err)

	l := &List{}
	assert.Error(t, l.UnmarshalJSON([]byte(`{"name":"x","objects":[{"kind":"h3","data":{}}]}`)))
	assert.Error(t, l.UnmarshalJSON([]byte(`{"name":"x","objects":[{"kind":"h1","data":{"name":"a","x":{"n":2,"min":0,"max":1},"sum":[1],"sumw2":[1]}}]}`)))
}

func TestCells(t *testing.T) {
	h1, _ := NewH1("a", "", 4, 0, 4)
	h1.Fill(-1)
	h1.FillW(2.5, 2)
	got := Cells(h1)
	require.Len(t, got, 2)
	assert.Equal(t, Cell{X: 0, Center: -0.5, Content: 1, Error: 1}, got[0])
	assert.Equal(t, 3, got[1].X)
	assert.InDelta(t, 2.0, got[1].Error, 1e-12)

	h2, _ := NewH2("b", "", 2, 0, 2, 2, 0, 2)
	h2.Fill(1.5, 0.5)
	c2 := Cells(h2)
	require.Len(t, c2, 1)
	assert.Equal(t, 2, c2[0].X)
	assert.Equal(t, 1, c2[0].Y)

	p, _ := NewProfile("p", "", 2, 0, 2)
	p.Fill(0.5, 3)
	p.Fill(0.5, 5)
	cp := Cells(p)
	require.Len(t, cp, 1)
	assert.InDelta(t, 4.0, cp[0].Content, 1e-12)
	assert.InDelta(t, 1.0, cp[0].Error, 1e-12)
}
