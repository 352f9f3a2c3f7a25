package main

/*
#include <stdlib.h>
#include "resvg_types.h"
*/
import "C"

import (
	"unsafe"

	"github.com/benoitkugler/okresvg/shim"
)

// The slot is written if and only if both arguments are non NULL.
//
//export resvg_tree_to_xml
func resvg_tree_to_xml(tree *C.resvg_render_tree, outXML **C.char) (status C.int32_t) {
	if tree == nil || outXML == nil {
		return nullInput
	}
	defer recoverStatus(&status, "resvg_tree_to_xml")

	*outXML = nil
	buf, st := shim.TreeToXML(treeOf(tree))
	if st != shim.OK {
		return C.int32_t(st)
	}
	*outXML = (*C.char)(C.CBytes(buf))
	return C.int32_t(shim.OK)
}

//export resvg_free_string
func resvg_free_string(str *C.char) {
	if str == nil {
		return
	}
	C.free(unsafe.Pointer(str))
}

//export resvg_version_string
func resvg_version_string() *C.char {
	return versionCString()
}
