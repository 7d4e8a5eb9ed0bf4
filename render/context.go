// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the rendering-backend resource model: a bounded
// pool of GPU contexts and the render target description. Rasterization
// itself is an external collaborator behind the scene composer's Backend
// interface; this package only governs who may hold a context and how the
// target is sized.
package render

import (
	"errors"
	"sync"

	"github.com/gogpu/gpucontext"
)

// ErrContextUnavailable is returned by Acquire when every pooled context
// is in use. The host environment bounds the number of live GPU contexts,
// so callers must treat this as a hard construction failure rather than
// fall back to CPU rendering silently.
var ErrContextUnavailable = errors.New("render: no rendering context available")

// Context is a pooled rendering context token. It grants access to the
// shared GPU device and queue for as long as it is held, and must be
// returned to its pool with Release exactly once.
type Context struct {
	pool     *ContextPool
	provider gpucontext.DeviceProvider
	released bool
	mu       sync.Mutex
}

// Device returns the shared GPU device.
func (c *Context) Device() gpucontext.Device {
	return c.provider.Device()
}

// Queue returns the shared GPU queue.
func (c *Context) Queue() gpucontext.Queue {
	return c.provider.Queue()
}

// Release returns the context to its pool. Release is idempotent.
func (c *Context) Release() {
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return
	}
	c.released = true
	c.mu.Unlock()
	c.pool.put()
}

// ContextPool is an explicit bounded pool of rendering contexts.
//
// The device itself is received from the host (gg-style: the library does
// not create GPU devices); the pool only bounds how many consumers may
// hold a context concurrently. ContextPool is safe for concurrent use.
type ContextPool struct {
	provider gpucontext.DeviceProvider
	slots    chan struct{}
}

// NewContextPool creates a pool handing out at most capacity contexts
// backed by the given device provider. Capacity values below one are
// raised to one.
func NewContextPool(provider gpucontext.DeviceProvider, capacity int) *ContextPool {
	if capacity < 1 {
		capacity = 1
	}
	slots := make(chan struct{}, capacity)
	for i := 0; i < capacity; i++ {
		slots <- struct{}{}
	}
	return &ContextPool{provider: provider, slots: slots}
}

// Acquire takes a context from the pool, failing fast with
// ErrContextUnavailable when the pool is exhausted.
func (p *ContextPool) Acquire() (*Context, error) {
	select {
	case <-p.slots:
		return &Context{pool: p, provider: p.provider}, nil
	default:
		return nil, ErrContextUnavailable
	}
}

// Available returns the number of contexts currently free.
func (p *ContextPool) Available() int {
	return len(p.slots)
}

func (p *ContextPool) put() {
	p.slots <- struct{}{}
}
