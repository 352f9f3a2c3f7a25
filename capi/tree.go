package main

/*
#include <stdlib.h>
#include "resvg_types.h"
*/
import "C"

import (
	"image"
	"runtime/cgo"
	"slices"
	"unsafe"

	"github.com/benoitkugler/okresvg/shim"
	"github.com/benoitkugler/okresvg/svgicon"
	"github.com/benoitkugler/okresvg/svgraster"
)

//export resvg_options_create
func resvg_options_create() *C.resvg_options {
	return (*C.resvg_options)(C.calloc(1, C.size_t(unsafe.Sizeof(C.resvg_options{}))))
}

//export resvg_options_set_strict
func resvg_options_set_strict(opt *C.resvg_options, strict C.bool) {
	if opt != nil {
		opt.strict = strict
	}
}

//export resvg_options_destroy
func resvg_options_destroy(opt *C.resvg_options) {
	C.free(unsafe.Pointer(opt))
}

// *tree is only written on success.
//
//export resvg_parse_tree_from_data
func resvg_parse_tree_from_data(data *C.char, length C.uintptr_t, opt *C.resvg_options, tree **C.resvg_render_tree) (status C.int32_t) {
	if data == nil || tree == nil {
		return nullInput
	}
	defer recoverStatus(&status, "resvg_parse_tree_from_data")

	input := slices.Clone(unsafe.Slice((*byte)(unsafe.Pointer(data)), int(length)))
	icon, st := shim.ParseTree(input, optionsOf(opt))
	if st != shim.OK {
		return C.int32_t(st)
	}
	*tree = newTree(icon)
	return C.int32_t(shim.OK)
}

//export resvg_parse_tree_from_file
func resvg_parse_tree_from_file(filePath *C.char, opt *C.resvg_options, tree **C.resvg_render_tree) (status C.int32_t) {
	if filePath == nil || tree == nil {
		return nullInput
	}
	defer recoverStatus(&status, "resvg_parse_tree_from_file")

	icon, st := shim.ParseTreeFromFile(C.GoString(filePath), optionsOf(opt))
	if st != shim.OK {
		return C.int32_t(st)
	}
	*tree = newTree(icon)
	return C.int32_t(shim.OK)
}

//export resvg_tree_destroy
func resvg_tree_destroy(tree *C.resvg_render_tree) {
	if tree == nil {
		return
	}
	defer recoverVoid("resvg_tree_destroy")
	cgo.Handle(tree.handle).Delete()
	C.free(unsafe.Pointer(tree))
}

//export resvg_is_image_empty
func resvg_is_image_empty(tree *C.resvg_render_tree) (empty C.bool) {
	if tree == nil {
		return true
	}
	defer recoverVoid("resvg_is_image_empty")
	return C.bool(treeOf(tree).IsEmpty())
}

//export resvg_get_image_size
func resvg_get_image_size(tree *C.resvg_render_tree) (size C.resvg_size) {
	if tree == nil {
		return size
	}
	defer recoverVoid("resvg_get_image_size")
	w, h := treeOf(tree).Size()
	size.width, size.height = C.float(w), C.float(h)
	return size
}

//export resvg_render
func resvg_render(tree *C.resvg_render_tree, transform C.resvg_transform, width, height C.uint32_t, pixmap *C.char) {
	if tree == nil || pixmap == nil || width == 0 || height == 0 {
		return
	}
	defer recoverVoid("resvg_render")

	icon := treeOf(tree)
	w, h := int(width), int(height)
	img := &image.RGBA{
		Pix:    unsafe.Slice((*byte)(unsafe.Pointer(pixmap)), w*h*4),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	sizeW, sizeH := icon.Size()
	m := matrixOf(transform).Mult(icon.TargetTransform(0, 0, sizeW, sizeH))
	svgraster.RenderTo(icon, img, m)
}

func matrixOf(t C.resvg_transform) svgicon.Matrix2D {
	return svgicon.Matrix2D{
		A: float64(t.a), B: float64(t.b),
		C: float64(t.c), D: float64(t.d),
		E: float64(t.e), F: float64(t.f),
	}
}
