package widget

// WithState calls f with the current value stored under key (the zero value
// of V if nothing was set yet) and returns f's result. It never mutates the
// stored value.
func WithState[V any](c *Context, key any, f func(V) V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, _ := c.state[key].(V)
	return f(v)
}

// WithStateMut calls f with a pointer to the stored value (allocating the
// zero value first if unset), lets f mutate it in place, and persists the
// result.
func WithStateMut[V any](c *Context, key any, f func(*V)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, _ := c.state[key].(V)
	f(&v)
	c.state[key] = v
}

// SetState overwrites the value stored under key.
func SetState[V any](c *Context, key any, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state[key] = v
}

// GetState returns the value stored under key and whether it was present.
func GetState[V any](c *Context, key any) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.state[key].(V)
	return v, ok
}

// FlagState is the common bool-valued case of GetState: it reports whether
// key was ever set true, without distinguishing unset from explicitly false.
func FlagState(c *Context, key any) bool {
	v, _ := GetState[bool](c, key)
	return v
}

// InitState sets key to the result of init the first time it's observed and
// leaves it untouched on every later call, returning the (possibly
// pre-existing) value either way.
func InitState[V any](c *Context, key any, init func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.state[key].(V); ok {
		return v
	}
	v := init()
	c.state[key] = v
	return v
}
