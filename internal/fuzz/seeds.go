package fuzztests

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"0 0 0 0 0 0 0 0\n",
	"255 255 255 255 255 255 255 127\n",
	"0 0 0 0 0 0 0 128\n",
	"1 2 3 4 5 6 7 8 9\n",
	"-1 0 0 0 0 0 0 0\n",
	"256 256 256 256 256 256 256 384\n",
	"1 2\n\n   \n",
	"\ufeff1 0 0 0 0 0 0 0",
	"+7 0 0 0 0 0 0 x\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range builtinSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds sample inputs from the repository testdata directory
// when it exists.
func addTestdataSeeds(f *testing.F) {
	matches, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.bytes"))
	if err != nil {
		return
	}
	for _, path := range matches {
		// #nosec G304 -- path comes from repository testdata glob
		src, err := os.ReadFile(path)
		if err != nil || len(src) > maxSeedBytes {
			continue
		}
		f.Add(src)
	}
}
