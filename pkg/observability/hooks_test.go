package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	hooks := NewLogHooks(log.New(&bytes.Buffer{}))
	SetPipelineHooks(hooks)
	SetCacheHooks(hooks)
	if Pipeline() != hooks || Cache() != hooks {
		t.Error("Set*Hooks should register custom hooks")
	}

	SetPipelineHooks(nil)
	if Pipeline() != hooks {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))

	tests := []struct {
		name string
		emit func()
		want string
	}{
		{"load", func() { h.OnLoadComplete(ctx, "disk.json", 12, time.Millisecond, nil) }, "load complete"},
		{"layout", func() { h.OnLayoutComplete(ctx, "rootToNode", 7, time.Millisecond, nil) }, "cells=7"},
		{"render failure", func() { h.OnRenderComplete(ctx, []string{"png"}, 0, errors.New("boom")) }, "render failed"},
		{"cache", func() { h.OnCacheHit(ctx, "layout") }, "cache hit"},
		{"cache set", func() { h.OnCacheSet(ctx, "artifact", 2048) }, "bytes=2048"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.emit()
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("log output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "x")
	p.OnLoadComplete(ctx, "x", 1, time.Second, nil)
	p.OnLayoutStart(ctx, "render", 1)
	p.OnLayoutComplete(ctx, "render", 1, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1)
}
