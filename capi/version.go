package main

/*
#include "resvg_types.h"

static const char *resvg_static_version(void) {
    return RESVG_VERSION;
}
*/
import "C"

// versionCString returns the static RESVG_VERSION literal,
// which must never be freed.
func versionCString() *C.char {
	return C.resvg_static_version()
}
