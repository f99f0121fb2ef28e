package synth

import "testing"

func TestInit(t *testing.T) {
	var i initee

	didPanic := func() (p bool) {
		defer func() { p = recover() != nil }()
		Init(i, Params{})
		return
	}()
	if !didPanic {
		t.Error("expected panic when passed by value")
	}
	if i.inited {
		t.Error("expected not inited")
	}

	Init(&i, Params{})
	if !i.inited {
		t.Error("expected inited")
	}
}

func TestInitDescends(t *testing.T) {
	var s struct {
		Params Params
		Inner  initee
	}
	Init(&s, Params{SampleRate: 48000})
	if s.Params.SampleRate != 48000 {
		t.Errorf("Params not set: %v", s.Params)
	}
	if !s.Inner.inited {
		t.Error("nested Initer not inited")
	}
}

type initee struct {
	inited bool
}

func (i *initee) InitAudio(p Params) { i.inited = true }
