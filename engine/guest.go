package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	runtimebridge "github.com/wippyai/runtime-bridge"
	"github.com/wippyai/runtime-bridge/errors"
)

// DefaultReleaseExport is the guest function GuestAdapter calls to give a
// wrapper reference back. Expected signature: (param i64 i32), where the
// first parameter is the wrapper handle and the second is 1 for
// slot-originated releases.
const DefaultReleaseExport = "wrapper-release"

// GuestAdapter implements runtimebridge.Adapter against a wazero module.
type GuestAdapter struct {
	ctx    context.Context
	fn     api.Function
	export string
}

// NewGuestAdapter wires an adapter to mod's DefaultReleaseExport.
func NewGuestAdapter(ctx context.Context, mod api.Module) (*GuestAdapter, error) {
	return NewGuestAdapterWithExport(ctx, mod, DefaultReleaseExport)
}

// NewGuestAdapterWithExport wires an adapter to a named release export.
// The export must exist at construction time; a guest without it cannot
// participate in ownership transfer at all.
func NewGuestAdapterWithExport(ctx context.Context, mod api.Module, export string) (*GuestAdapter, error) {
	fn := mod.ExportedFunction(export)
	if fn == nil {
		return nil, errors.MissingExport(export)
	}
	return &GuestAdapter{ctx: ctx, fn: fn, export: export}, nil
}

// ReleaseRef forwards one reference release to the guest. Adapter releases
// cannot propagate errors (they run on teardown paths with no caller to
// return to), so guest trap or closure is logged and swallowed; the guest is
// gone and its refcounts with it.
func (g *GuestAdapter) ReleaseRef(h runtimebridge.Handle, fromSlot bool) {
	var from uint64
	if fromSlot {
		from = 1
	}
	if _, err := g.fn.Call(g.ctx, uint64(h), from); err != nil {
		Logger().Error("guest release failed",
			zap.String("export", g.export),
			zap.Uint64("handle", uint64(h)),
			zap.Bool("from_slot", fromSlot),
			zap.Error(err))
	}
}
