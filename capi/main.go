// Command capi is the resvg compatible C library. Build it with
//
//	go build -buildmode=c-shared -o libresvg.so ./capi
//
// and include resvg.h. Render trees are owned by Go and reached
// from C through a runtime/cgo.Handle; strings returned to C are
// allocated with malloc. The tests need the capitest tag.
package main

/*
#include <stdlib.h>
#include "resvg_types.h"
*/
import "C"

import (
	"log/slog"
	"runtime/cgo"
	"unsafe"

	"github.com/benoitkugler/okresvg/shim"
	"github.com/benoitkugler/okresvg/svgicon"
)

func main() {}

// nullInput is returned for NULL arguments.
var nullInput = C.int32_t(shim.StatusOf(shim.ErrNullInput))

func newTree(icon *svgicon.SvgIcon) *C.resvg_render_tree {
	tree := (*C.resvg_render_tree)(C.malloc(C.size_t(unsafe.Sizeof(C.resvg_render_tree{}))))
	tree.handle = C.uintptr_t(cgo.NewHandle(icon))
	return tree
}

// treeOf trusts the caller: `tree` must be a live tree.
func treeOf(tree *C.resvg_render_tree) *svgicon.SvgIcon {
	return cgo.Handle(tree.handle).Value().(*svgicon.SvgIcon)
}

func optionsOf(opt *C.resvg_options) shim.Options {
	return shim.Options{Strict: opt != nil && bool(opt.strict)}
}

// recoverStatus must be deferred: a panic must not unwind into C.
func recoverStatus(status *C.int32_t, function string) {
	if r := recover(); r != nil {
		slog.Error("panic in C API", slog.String("function", function), slog.Any("panic", r))
		*status = C.int32_t(shim.ParsingFailed)
	}
}

func recoverVoid(function string) {
	if r := recover(); r != nil {
		slog.Error("panic in C API", slog.String("function", function), slog.Any("panic", r))
	}
}
