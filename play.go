package synth

import "github.com/gordonklaus/portaudio"

const playBufferFrames = 1024

// Player streams a Handle to the default output device through
// portaudio. The callback pulls whole buffers under one lock try; a
// contended try yields a silent buffer rather than blocking the device
// thread.
type Player struct {
	handle *Handle
	stream *portaudio.Stream
	buf    [][2]float64
}

func NewPlayer(h *Handle) *Player {
	return &Player{handle: h}
}

func (p *Player) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return err
	}
	p.buf = make([][2]float64, playBufferFrames)
	stream, err := portaudio.OpenDefaultStream(0, 2, p.handle.engine.Params.SampleRate, playBufferFrames, p.process)
	if err != nil {
		portaudio.Terminate()
		return err
	}
	p.stream = stream
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return err
	}
	return nil
}

func (p *Player) process(out [][]float32) {
	n := len(out[0])
	if n > len(p.buf) {
		n = len(p.buf)
	}
	p.handle.GenerateSamples(p.buf[:n])
	for i, s := range p.buf[:n] {
		out[0][i] = float32(s[0])
		out[1][i] = float32(s[1])
	}
}

func (p *Player) Stop() error {
	err := p.stream.Close()
	portaudio.Terminate()
	return err
}
