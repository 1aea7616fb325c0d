// Package mocks holds hand-authored gomock-style mocks for interfaces this
// module cannot run a code generator against in this environment. Keep the
// method set in sync with internal/primitives.Source by hand.
package mocks

import (
	"reflect"
	"unsafe"

	"go.uber.org/mock/gomock"
)

// MockSource is a mock of the primitives.Source interface.
type MockSource struct {
	ctrl     *gomock.Controller
	recorder *MockSourceMockRecorder
}

// MockSourceMockRecorder is the mock recorder for MockSource.
type MockSourceMockRecorder struct {
	mock *MockSource
}

// NewMockSource creates a new mock instance.
func NewMockSource(ctrl *gomock.Controller) *MockSource {
	m := &MockSource{ctrl: ctrl}
	m.recorder = &MockSourceMockRecorder{m}

	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSource) EXPECT() *MockSourceMockRecorder {
	return m.recorder
}

// HeapExtend mocks base method.
func (m *MockSource) HeapExtend(n uintptr) (unsafe.Pointer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HeapExtend", n)
	ret0, _ := ret[0].(unsafe.Pointer)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// HeapExtend indicates an expected call of HeapExtend.
func (mr *MockSourceMockRecorder) HeapExtend(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HeapExtend",
		reflect.TypeOf((*MockSource)(nil).HeapExtend), n)
}

// BulkAllocate mocks base method.
func (m *MockSource) BulkAllocate(n uintptr) (unsafe.Pointer, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BulkAllocate", n)
	ret0, _ := ret[0].(unsafe.Pointer)
	ret1, _ := ret[1].(error)

	return ret0, ret1
}

// BulkAllocate indicates an expected call of BulkAllocate.
func (mr *MockSourceMockRecorder) BulkAllocate(n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BulkAllocate",
		reflect.TypeOf((*MockSource)(nil).BulkAllocate), n)
}

// BulkRelease mocks base method.
func (m *MockSource) BulkRelease(ptr unsafe.Pointer, n uintptr) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "BulkRelease", ptr, n)
	ret0, _ := ret[0].(error)

	return ret0
}

// BulkRelease indicates an expected call of BulkRelease.
func (mr *MockSourceMockRecorder) BulkRelease(ptr, n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BulkRelease",
		reflect.TypeOf((*MockSource)(nil).BulkRelease), ptr, n)
}
