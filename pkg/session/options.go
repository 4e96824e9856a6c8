package session

// Options are the engine settings exposed over UCI.
type Options struct {
	Hash            int // megabytes
	Threads         int
	Ponder          bool
	OwnBook         bool
	AnalyseMode     bool
	SyzygyPath      string
	SyzygyProbeRoot bool
	MoveOverhead    int // milliseconds
	EvalFile        string
}

const (
	MinHash = 1
	MaxHash = 4096

	defaultEvalFile = "corvid.weights"
)

func DefaultOptions() Options {
	return Options{
		Hash:            64,
		Threads:         1,
		SyzygyProbeRoot: true,
		MoveOverhead:    25,
		EvalFile:        defaultEvalFile,
	}
}

// evalCacheSize is the per thread eval cache size for a hash of hashMB.
func evalCacheSize(hashMB int) int {
	var mb = hashMB / 16
	if mb < 1 {
		mb = 1
	}
	return mb
}
