//go:build capitest

package main

// Go test files cannot import "C": the helpers below
// wrap the C values the tests need. They are only built
// with the capitest tag:
//
//	go test -tags capitest ./capi

/*
#include <stdlib.h>
#include "resvg_types.h"

// a slot initially pointing to itself, to detect writes
static char **new_slot(void) {
    char **slot = malloc(sizeof(char *));
    *slot = (char *)slot;
    return slot;
}
*/
import "C"

import "unsafe"

// slot is a C allocated `char *` location
type slot struct {
	p **C.char
}

func newSlot() slot { return slot{p: C.new_slot()} }

func (s slot) untouched() bool { return unsafe.Pointer(*s.p) == unsafe.Pointer(s.p) }

func (s slot) isNil() bool { return *s.p == nil }

func (s slot) value() string { return C.GoString(*s.p) }

func (s slot) address() uintptr { return uintptr(unsafe.Pointer(*s.p)) }

// release frees the string held by the slot and resets it.
func (s slot) release() {
	resvg_free_string(*s.p)
	*s.p = (*C.char)(unsafe.Pointer(s.p))
}

func (s slot) destroy() { C.free(unsafe.Pointer(s.p)) }

func treeToXML(tree *C.resvg_render_tree, s slot) int32 {
	return int32(resvg_tree_to_xml(tree, s.p))
}

func treeToXMLNoSlot(tree *C.resvg_render_tree) int32 {
	return int32(resvg_tree_to_xml(tree, nil))
}

// invalidTree returns a tree with a zero handle,
// which panics when dereferenced.
func invalidTree() *C.resvg_render_tree {
	return (*C.resvg_render_tree)(C.calloc(1, C.size_t(unsafe.Sizeof(C.resvg_render_tree{}))))
}

func freeInvalidTree(tree *C.resvg_render_tree) { C.free(unsafe.Pointer(tree)) }

func parseTree(data string, strict bool) (*C.resvg_render_tree, int32) {
	opt := resvg_options_create()
	defer resvg_options_destroy(opt)
	resvg_options_set_strict(opt, C.bool(strict))

	cData := C.CString(data)
	defer C.free(unsafe.Pointer(cData))

	var tree *C.resvg_render_tree
	st := resvg_parse_tree_from_data(cData, C.uintptr_t(len(data)), opt, &tree)
	return tree, int32(st)
}

func parseTreeFromFile(path string) (*C.resvg_render_tree, int32) {
	cPath := C.CString(path)
	defer C.free(unsafe.Pointer(cPath))

	var tree *C.resvg_render_tree
	st := resvg_parse_tree_from_file(cPath, nil, &tree)
	return tree, int32(st)
}

func imageSize(tree *C.resvg_render_tree) (w, h float32) {
	size := resvg_get_image_size(tree)
	return float32(size.width), float32(size.height)
}

func isImageEmpty(tree *C.resvg_render_tree) bool { return bool(resvg_is_image_empty(tree)) }

// render returns a copy of the pixmap
func render(tree *C.resvg_render_tree, width, height int, scale float32) []byte {
	size := width * height * 4
	pixmap := (*C.char)(C.calloc(C.size_t(size), 1))
	defer C.free(unsafe.Pointer(pixmap))

	t := C.resvg_transform{a: C.float(scale), d: C.float(scale)}
	resvg_render(tree, t, C.uint32_t(width), C.uint32_t(height), pixmap)
	return C.GoBytes(unsafe.Pointer(pixmap), C.int(size))
}

func versionString() (address uintptr, value string) {
	p := resvg_version_string()
	return uintptr(unsafe.Pointer(p)), C.GoString(p)
}
