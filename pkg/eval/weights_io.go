package eval

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const (
	weightsMagic   = "CRVW"
	weightsVersion = 1
)

var ErrBadWeights = errors.New("bad weights file")

type weightsHeader struct {
	Magic   [4]byte
	Version uint16
	Buckets uint16
	Count   uint32
}

func (w *Weights) scoreCount() int {
	var n = 0
	w.forEach(func(*Score) { n++ })
	return n
}

// LoadWeights reads weights written by Weights.Write.
func LoadWeights(r io.Reader) (*Weights, error) {
	var dec, err = zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var header weightsHeader
	if err := binary.Read(dec, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWeights, err)
	}
	var w = &Weights{}
	if string(header.Magic[:]) != weightsMagic ||
		header.Version != weightsVersion ||
		header.Buckets != KingBucketCount ||
		int(header.Count) != w.scoreCount() {
		return nil, fmt.Errorf("%w: unexpected header %+v", ErrBadWeights, header)
	}

	var values = make([]int16, 2*header.Count)
	if err := binary.Read(dec, binary.LittleEndian, values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadWeights, err)
	}
	var i = 0
	w.forEach(func(s *Score) {
		*s = S(int(values[i]), int(values[i+1]))
		i += 2
	})
	return w, nil
}

// Write stores w as zstd-compressed little-endian int16 pairs.
func (w *Weights) Write(out io.Writer) error {
	var values = make([]int16, 0, 2*w.scoreCount())
	var outOfRange = false
	w.forEach(func(s *Score) {
		var mg, eg = s.Mg(), s.Eg()
		if mg < math.MinInt16 || mg > math.MaxInt16 || eg < math.MinInt16 || eg > math.MaxInt16 {
			outOfRange = true
		}
		values = append(values, int16(mg), int16(eg))
	})
	if outOfRange {
		return fmt.Errorf("%w: value does not fit int16", ErrBadWeights)
	}

	var enc, err = zstd.NewWriter(out, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	var header = weightsHeader{
		Version: weightsVersion,
		Buckets: KingBucketCount,
		Count:   uint32(len(values) / 2),
	}
	copy(header.Magic[:], weightsMagic)
	if err := binary.Write(enc, binary.LittleEndian, &header); err != nil {
		enc.Close()
		return err
	}
	if err := binary.Write(enc, binary.LittleEndian, values); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// FileStore keeps weights in files.
type FileStore struct{}

func (FileStore) Load(path string) (*Weights, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadWeights(f)
}

func (FileStore) Save(path string, w *Weights) error {
	var f, err = os.Create(path)
	if err != nil {
		return err
	}
	if err := w.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (FileStore) Default() *Weights {
	return DefaultWeights()
}

// MapPath resolves "./" against the executable directory and "~/" against the home directory.
func MapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		curUser, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(curUser.HomeDir, strings.TrimPrefix(path, "~/"))
	}
	if strings.HasPrefix(path, "./") {
		var exePath, err = os.Executable()
		if err != nil {
			return path
		}
		return filepath.Join(filepath.Dir(exePath), strings.TrimPrefix(path, "./"))
	}
	return path
}
