// Package script evaluates starlark snippets against the register file.
//
// Registers are named in lower case (ax, al, cs, ip, flags, ...), and the
// status flags are booleans (cf, pf, af, zf, sf, tf, df, of). The interrupt
// flag is a starlark keyword, and is not available.
package script
