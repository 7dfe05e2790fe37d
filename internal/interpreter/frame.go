package interpreter

// Frame is one level of the call stack. Variables are flat per frame; a
// pushed frame starts with a copy of its caller's variables unless it
// belongs to a method invocation, and on pop any variable present in both
// frames is copied back to the caller.
type Frame struct {
	vars map[string]Object

	// self is the object context for method bodies; nil outside methods.
	self *Instance

	// method marks a method invocation frame, which does not inherit nor
	// write back caller locals.
	method bool
}

func newFrame() *Frame {
	return &Frame{vars: make(map[string]Object)}
}

func (f *Frame) get(name string) (Object, bool) {
	v, ok := f.vars[name]
	return v, ok
}

func (f *Frame) set(name string, value Object) { f.vars[name] = value }

func (f *Frame) unset(name string) { delete(f.vars, name) }

// snapshot copies the frame's variable bindings.
func (f *Frame) snapshot() map[string]Object {
	out := make(map[string]Object, len(f.vars))
	for k, v := range f.vars {
		out[k] = v
	}
	return out
}

// CallStack holds the frame chain. The root frame is created at construction
// and never popped.
type CallStack struct {
	frames []*Frame
}

func newCallStack() *CallStack {
	return &CallStack{frames: []*Frame{newFrame()}}
}

func (cs *CallStack) current() *Frame { return cs.frames[len(cs.frames)-1] }

func (cs *CallStack) depth() int { return len(cs.frames) }

// push creates a frame. When inheritLocals is true the new frame starts
// with a copy of the caller's variables; method frames never inherit.
func (cs *CallStack) push(inheritLocals bool) *Frame {
	f := newFrame()
	if inheritLocals {
		caller := cs.current()
		for k, v := range caller.vars {
			f.vars[k] = v
		}
	}
	cs.frames = append(cs.frames, f)
	return f
}

// pushMethod creates a method invocation frame bound to an object context.
func (cs *CallStack) pushMethod(self *Instance) *Frame {
	f := newFrame()
	f.self = self
	f.method = true
	cs.frames = append(cs.frames, f)
	return f
}

// pop removes the top frame. For non-method frames, variables that exist in
// both the popped frame and the caller are copied back so mutations made in
// the callee remain visible. The root frame is never removed.
func (cs *CallStack) pop() {
	if len(cs.frames) == 1 {
		return
	}
	top := cs.frames[len(cs.frames)-1]
	cs.frames = cs.frames[:len(cs.frames)-1]

	if top.method {
		return
	}
	caller := cs.current()
	for k, v := range top.vars {
		if _, ok := caller.vars[k]; ok {
			caller.vars[k] = v
		}
	}
}

// self walks from the top frame down for the nearest object context, so
// nested non-method frames (loops, try bodies) still see the receiver.
func (cs *CallStack) self() *Instance {
	for i := len(cs.frames) - 1; i >= 0; i-- {
		if cs.frames[i].self != nil {
			return cs.frames[i].self
		}
		if cs.frames[i].method {
			break
		}
	}
	return nil
}
