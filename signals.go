package tether

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for binder events.
var (
	SignalBinderCreated  = capitan.NewSignal("tether.binder.created", "Binder instantiated")
	SignalInitComplete   = capitan.NewSignal("tether.init.complete", "Binder initialization finished")
	SignalPutApplied     = capitan.NewSignal("tether.put.applied", "Property bound onto target")
	SignalPutSkipped     = capitan.NewSignal("tether.put.skipped", "Property key has no bindable slot")
	SignalPutFailed      = capitan.NewSignal("tether.put.failed", "Property conversion or assignment failed")
	SignalPutAllComplete = capitan.NewSignal("tether.putall.complete", "Batch binding finished")
	SignalKeyShadowed    = capitan.NewSignal("tether.key.shadowed", "Later accessor replaced an earlier one for the same key")
	SignalSourceDecoded  = capitan.NewSignal("tether.source.decoded", "Source decoded into key/value pairs")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyKey         = capitan.NewStringKey("key")
	KeyAccessor    = capitan.NewStringKey("accessor")
	KeyShadowed    = capitan.NewStringKey("shadowed")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeySlotCount   = capitan.NewIntKey("slot_count")
	KeyPairCount   = capitan.NewIntKey("pair_count")
	KeyApplied     = capitan.NewIntKey("applied_count")
	KeySkipped     = capitan.NewIntKey("skipped_count")
	KeyFailed      = capitan.NewIntKey("failed_count")
)

// emitBinderCreated emits an event when a binder is created.
func emitBinderCreated(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalBinderCreated,
		KeyTypeName.Field(typeName),
	)
}

// emitInitComplete emits an event when initialization finishes.
func emitInitComplete(ctx context.Context, typeName string, slots int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeySlotCount.Field(slots),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalInitComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalInitComplete, fields...)
	}
}

func emitPutApplied(ctx context.Context, typeName, key string) {
	capitan.Emit(ctx, SignalPutApplied,
		KeyTypeName.Field(typeName),
		KeyKey.Field(key),
	)
}

func emitPutSkipped(ctx context.Context, typeName, key string) {
	capitan.Emit(ctx, SignalPutSkipped,
		KeyTypeName.Field(typeName),
		KeyKey.Field(key),
	)
}

func emitPutFailed(ctx context.Context, typeName, key string, err error) {
	capitan.Error(ctx, SignalPutFailed,
		KeyTypeName.Field(typeName),
		KeyKey.Field(key),
		KeyError.Field(err),
	)
}

// emitPutAllComplete emits an event when a batch of pairs has been applied.
func emitPutAllComplete(ctx context.Context, typeName string, res Result, duration time.Duration) {
	capitan.Emit(ctx, SignalPutAllComplete,
		KeyTypeName.Field(typeName),
		KeyApplied.Field(res.Applied),
		KeySkipped.Field(res.Skipped),
		KeyFailed.Field(res.Failed),
		KeyDuration.Field(duration),
	)
}

// emitKeyShadowed emits an event when two accessors derive the same key.
func emitKeyShadowed(ctx context.Context, typeName, key, shadowed, accessor string) {
	capitan.Emit(ctx, SignalKeyShadowed,
		KeyTypeName.Field(typeName),
		KeyKey.Field(key),
		KeyShadowed.Field(shadowed),
		KeyAccessor.Field(accessor),
	)
}

// emitSourceDecoded emits an event after a source produced its pairs.
func emitSourceDecoded(ctx context.Context, contentType string, pairs int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyPairCount.Field(pairs),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSourceDecoded, fields...)
	} else {
		capitan.Emit(ctx, SignalSourceDecoded, fields...)
	}
}
