// Package pitch estimates the fundamental frequency of a monophonic
// sample stream and maps it to a musical note.
//
// Two estimators share one result contract:
//
//   - AlgorithmYIN (default): time-domain cumulative mean normalized
//     difference with parabolic lag refinement. Cheap, accurate on pure
//     and lightly harmonic tones, range 40-800 Hz by default.
//   - AlgorithmSpectral: Hann-windowed zero-padded FFT with a harmonic
//     product spectrum, built for harmonically rich sources where octave
//     confusion is the failure mode. Range 60-500 Hz by default.
//
// A Detector consumes fixed-size chunks and keeps a rolling analysis
// window:
//
//	d, err := pitch.New(pitch.WithChunkSize(1024))
//	for chunk := range source {
//		res, ok, err := d.ProcessChunk(chunk)
//		if err != nil { ... }
//		if ok {
//			fmt.Println(res.Note, res.Frequency)
//		}
//	}
//	d.Close()
//
// No detection is not an error: quiet or unpitched frames return ok ==
// false with a nil error. Detection results are smoothed per note: repeat
// estimates of the same note blend exponentially, a note change locks on
// to the raw estimate immediately.
package pitch
