//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cwbudde/algo-pitch/internal/webdemo"
)

var (
	engine *webdemo.Engine
	funcs  []js.Func
)

func main() {
	api := js.Global().Get("Object").New()

	api.Set("init", export(func(args []js.Value) any {
		sr := 48000.0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		e, err := webdemo.NewEngine(sr)
		if err != nil {
			return err.Error()
		}
		if engine != nil {
			engine.Close()
		}
		engine = e
		return js.Null()
	}))

	api.Set("processChunk", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		input := args[0]
		samples := make([]float32, input.Length())
		for i := 0; i < input.Length(); i++ {
			samples[i] = float32(input.Index(i).Float())
		}
		reading, ok := engine.ProcessChunk(samples)
		if !ok {
			return js.Null()
		}
		obj := js.Global().Get("Object").New()
		obj.Set("frequency", reading.FrequencyHz)
		obj.Set("clarity", reading.Clarity)
		obj.Set("note", reading.Note)
		obj.Set("octave", reading.Octave)
		obj.Set("midi", reading.MIDI)
		obj.Set("cents", reading.Cents)
		return obj
	}))

	api.Set("setAlgorithm", export(func(args []js.Value) any {
		if engine == nil || len(args) < 1 {
			return js.Null()
		}
		if err := engine.SetAlgorithm(args[0].String()); err != nil {
			return err.Error()
		}
		return js.Null()
	}))

	api.Set("algorithm", export(func(args []js.Value) any {
		if engine == nil {
			return ""
		}
		return engine.Algorithm()
	}))

	api.Set("chunkSize", export(func(args []js.Value) any {
		if engine == nil {
			return 0
		}
		return engine.ChunkSize()
	}))

	api.Set("reset", export(func(args []js.Value) any {
		if engine != nil {
			engine.Reset()
		}
		return js.Null()
	}))

	api.Set("arenaStats", export(func(args []js.Value) any {
		if engine == nil {
			return js.Null()
		}
		stats := engine.ArenaStats()
		obj := js.Global().Get("Object").New()
		obj.Set("arenaBytes", stats.ArenaBytes)
		obj.Set("bumpMark", stats.BumpMark)
		obj.Set("liveAllocs", stats.LiveAllocs)
		obj.Set("freeBlocks", stats.FreeBlocks)
		obj.Set("freeBytes", stats.FreeBytes)
		return obj
	}))

	js.Global().Set("AlgoPitchDemo", api)
	select {}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}
