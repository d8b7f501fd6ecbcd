package music

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

const (
	wavChannels       = 2
	wavBytesPerSample = 2
)

// EncodeWAV writes mono samples as 16-bit stereo PCM WAV at 44.1 kHz,
// duplicating the mono signal into both channels. Samples outside
// [-1, 1] are clipped.
func EncodeWAV(w io.Writer, mono []float64) error {
	dataSize := len(mono) * wavChannels * wavBytesPerSample

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], wavChannels)
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], sampleRate*wavChannels*wavBytesPerSample)
	binary.LittleEndian.PutUint16(header[32:34], wavChannels*wavBytesPerSample)
	binary.LittleEndian.PutUint16(header[34:36], 8*wavBytesPerSample)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}
	frame := make([]byte, wavChannels*wavBytesPerSample)
	for _, s := range mono {
		v := uint16(pcm16(s))
		binary.LittleEndian.PutUint16(frame[0:2], v)
		binary.LittleEndian.PutUint16(frame[2:4], v)
		if _, err := bw.Write(frame); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteWAV encodes mono samples to a stereo WAV file at path.
func WriteWAV(path string, mono []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeWAV(f, mono); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func pcm16(s float64) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}
