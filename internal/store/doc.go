// Package store provides the customer and track resource stores.
//
// Each store wraps the gateway for one resource family, mirrors the
// server responses into local state (list, current item, total count)
// and wraps gateway failures into operation-flavored errors without
// altering the underlying status semantics. The mirror is a cache of
// the last server answer, nothing more; the server stays authoritative.
package store
