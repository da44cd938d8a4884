package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle to a world-wide value that belongs to no
// entity: game sessions, input buffers, counters. As a system field it is
// bound by Scheduler.Register.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle to the T singleton, creating it from
// initial (or the zero value) when it does not exist yet.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var v T
		if len(initial) > 0 {
			v = initial[0]
		}
		storage.AddSingleton(v)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the handle to storage. A missing singleton is looked up
// again on the next Get.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.resolve()
}

func (s *Singleton[T]) resolve() {
	if s.ptr != nil || s.storage == nil {
		return
	}
	if e := s.storage.getSingletonEntry(reflect.TypeFor[T]()); e != nil {
		s.ptr = e.dataPtr
	}
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	s.resolve()
	return (*T)(s.ptr)
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
