//go:build capitest

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/benoitkugler/okresvg/shim"
	"github.com/benoitkugler/okresvg/svgicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const square = `<svg width="10" height="10" viewBox="0 0 10 10"><title>square</title><rect width="5" height="5" fill="red"/></svg>`

func captureLogs(t *testing.T) *bytes.Buffer {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &logs
}

func TestNullTree(t *testing.T) {
	s := newSlot()
	defer s.destroy()

	assert.Equal(t, int32(shim.ParsingFailed), treeToXML(nil, s))
	assert.True(t, s.untouched())

	assert.Equal(t, int32(shim.ParsingFailed), treeToXMLNoSlot(nil))
}

func TestNullSlotDoesNotReadTree(t *testing.T) {
	logs := captureLogs(t)
	tree := invalidTree()
	defer freeInvalidTree(tree)

	assert.Equal(t, int32(shim.ParsingFailed), treeToXMLNoSlot(tree))
	assert.Empty(t, logs.String()) // no recovered panic

	// the same invalid tree with a slot is dereferenced
	s := newSlot()
	defer s.destroy()
	assert.Equal(t, int32(shim.ParsingFailed), treeToXML(tree, s))
	assert.Contains(t, logs.String(), "panic in C API")
}

func TestExport(t *testing.T) {
	tree, st := parseTree(square, true)
	require.Equal(t, int32(shim.OK), st)
	defer resvg_tree_destroy(tree)

	s := newSlot()
	defer s.destroy()
	require.Equal(t, int32(shim.OK), treeToXML(tree, s))
	require.False(t, s.isNil())
	first := s.value()

	expected, _ := shim.TreeToXML(treeOf(tree))
	assert.Equal(t, string(expected[:len(expected)-1]), first)
	assert.Contains(t, first, "<title>square</title>")

	// structurally valid: the output parses back to the same tree
	again, err := svgicon.ReadIconStream(bytes.NewReader([]byte(first)), svgicon.StrictErrorMode)
	require.NoError(t, err)
	assert.Equal(t, first, again.ToString(svgicon.DefaultWriteOptions()))

	// idempotent
	s2 := newSlot()
	defer s2.destroy()
	require.Equal(t, int32(shim.OK), treeToXML(tree, s2))
	assert.Equal(t, first, s2.value())
	assert.NotEqual(t, s.address(), s2.address())
	s2.release()

	// fresh buffer after a release
	s.release()
	require.Equal(t, int32(shim.OK), treeToXML(tree, s))
	assert.Equal(t, first, s.value())
	s.release()
}

func TestExportNotRepresentable(t *testing.T) {
	icon, err := svgicon.ReadIconStream(bytes.NewReader([]byte(square)), svgicon.StrictErrorMode)
	require.NoError(t, err)
	icon.Titles = []string{"nul\x00inside"}
	tree := newTree(icon)
	defer resvg_tree_destroy(tree)

	s := newSlot()
	defer s.destroy()
	assert.Equal(t, int32(shim.NotAnUTF8String), treeToXML(tree, s))
	assert.True(t, s.isNil())
}

func TestConcurrentExport(t *testing.T) {
	tree, st := parseTree(square, false)
	require.Equal(t, int32(shim.OK), st)
	defer resvg_tree_destroy(tree)

	results := make([]string, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := newSlot()
			defer s.destroy()
			if treeToXML(tree, s) == int32(shim.OK) {
				results[i] = s.value()
				s.release()
			}
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestFreeNull(t *testing.T) {
	assert.NotPanics(t, func() { resvg_free_string(nil) })
	assert.NotPanics(t, func() { resvg_tree_destroy(nil) })
}

func TestVersionString(t *testing.T) {
	p1, v1 := versionString()
	p2, v2 := versionString()
	assert.NotZero(t, p1)
	assert.NotEmpty(t, v1)
	assert.Equal(t, v1, v2)
	assert.Equal(t, p1, p2) // static, never allocated
	assert.Equal(t, shim.Version, v1)
}

func TestParse(t *testing.T) {
	tree, st := parseTree(`<svg></svg>`, false)
	assert.Equal(t, int32(shim.InvalidSize), st)
	assert.Nil(t, tree)

	tree, st = parseTree(`<svg viewBox="0 0 4 4"><text>a</text></svg>`, true)
	assert.Equal(t, int32(shim.ParsingFailed), st)
	assert.Nil(t, tree)

	tree, st = parseTree(`<svg viewBox="0 0 4 4"><text>a</text></svg>`, false)
	require.Equal(t, int32(shim.OK), st)
	assert.True(t, isImageEmpty(tree))
	resvg_tree_destroy(tree)

	_, st = parseTreeFromFile(filepath.Join(t.TempDir(), "missing.svg"))
	assert.Equal(t, int32(shim.FileOpenFailed), st)

	path := filepath.Join(t.TempDir(), "square.svg")
	require.NoError(t, os.WriteFile(path, []byte(square), 0o644))
	tree, st = parseTreeFromFile(path)
	require.Equal(t, int32(shim.OK), st)
	defer resvg_tree_destroy(tree)

	assert.False(t, isImageEmpty(tree))
	w, h := imageSize(tree)
	assert.Equal(t, [2]float32{10, 10}, [2]float32{w, h})
}

func TestRender(t *testing.T) {
	tree, st := parseTree(square, false)
	require.Equal(t, int32(shim.OK), st)
	defer resvg_tree_destroy(tree)

	const size = 20
	pix := render(tree, size, size, 2)
	at := func(x, y int) []byte { i := 4 * (y*size + x); return pix[i : i+4] }
	assert.Equal(t, []byte{0xff, 0, 0, 0xff}, at(4, 4))
	assert.Equal(t, []byte{0, 0, 0, 0}, at(15, 15))

	// no-op on invalid arguments
	assert.Equal(t, make([]byte, 4*4*4), render(nil, 4, 4, 1))
}
