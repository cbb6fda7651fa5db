package nlog

import (
	"fmt"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxZFields = 8

// EntryZ is a fluent, mostly-allocation-free log record builder. Call one of
// Module.DebugZ/InfoZ/... to obtain one (nil if that level is disabled for
// the module, in which case every method below is a no-op), chain field
// setters, and finish with End().
type EntryZ struct {
	mod    Module
	lvl    Level
	msg    string
	nfield int
	keys   [maxZFields]string
	vals   [maxZFields]string
}

func newEntryZ() *EntryZ { return &EntryZ{} }

func (e *EntryZ) push(key, val string) *EntryZ {
	if e == nil {
		return nil
	}
	if e.nfield < maxZFields {
		e.keys[e.nfield] = key
		e.vals[e.nfield] = val
		e.nfield++
	}
	return e
}

func (e *EntryZ) String(key, val string) *EntryZ { return e.push(key, val) }
func (e *EntryZ) Bool(key string, val bool) *EntryZ {
	if val {
		return e.push(key, "true")
	}
	return e.push(key, "false")
}
func (e *EntryZ) Int(key string, val int) *EntryZ       { return e.push(key, fmt.Sprintf("%d", val)) }
func (e *EntryZ) Uint8(key string, val uint8) *EntryZ   { return e.push(key, fmt.Sprintf("%d", val)) }
func (e *EntryZ) Uint16(key string, val uint16) *EntryZ { return e.push(key, fmt.Sprintf("%d", val)) }
func (e *EntryZ) Hex8(key string, val uint8) *EntryZ    { return e.push(key, fmt.Sprintf("%02x", val)) }
func (e *EntryZ) Hex16(key string, val uint16) *EntryZ  { return e.push(key, fmt.Sprintf("%04x", val)) }
func (e *EntryZ) Error(key string, err error) *EntryZ {
	if err == nil {
		return e.push(key, "<nil>")
	}
	return e.push(key, err.Error())
}

// End flushes the record to the underlying logger. Safe to call on a nil
// receiver (the module was disabled for this level).
func (e *EntryZ) End() {
	if e == nil {
		return
	}
	fields := make(logrus.Fields, e.nfield+1)
	fields["_mod"] = modNames[e.mod]
	for i := 0; i < e.nfield; i++ {
		fields[e.keys[i]] = e.vals[i]
	}
	entry := logrus.StandardLogger().WithFields(fields)
	switch e.lvl {
	case DebugLevel:
		entry.Debug(e.msg)
	case InfoLevel:
		entry.Info(e.msg)
	case WarnLevel:
		entry.Warn(e.msg)
	case ErrorLevel:
		entry.Error(e.msg)
	case FatalLevel:
		entry.Fatal(e.msg)
	default:
		entry.Panic(e.msg)
	}
}
