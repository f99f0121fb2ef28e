package synth

import (
	"fmt"
	"reflect"
)

// An Initer allocates its buffers and derives its per-sample
// coefficients for the given parameters. Nothing in the render path
// allocates after InitAudio has run.
type Initer interface {
	InitAudio(Params)
}

type Params struct {
	SampleRate float64
}

func (p *Params) InitAudio(q Params) { *p = q }

// Init walks x recursively and calls InitAudio on every component
// that implements Initer. x must be a pointer for its components to
// be addressable.
func Init(x interface{}, p Params) {
	initVal(reflect.ValueOf(x), p)
}

var initerType = reflect.TypeOf((*Initer)(nil)).Elem()

func initVal(v reflect.Value, p Params) {
	if v.Kind() == reflect.Ptr && v.IsNil() || !v.CanInterface() {
		return
	}

	v = reflect.Indirect(v)
	if v.CanAddr() && v.Type().Name() != "" && v.Kind() != reflect.Interface {
		v = v.Addr()
	}
	if x, ok := v.Interface().(Initer); ok {
		x.InitAudio(p)
		return
	}
	if t := v.Type(); t.Kind() != reflect.Ptr && reflect.PtrTo(t).Implements(initerType) {
		panic(fmt.Sprintf("synth.Init: %s is not addressable; pass a pointer", t))
	}

	v = reflect.Indirect(v)
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			initVal(v.Field(i), p)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			initVal(v.Index(i), p)
		}
	}
}
