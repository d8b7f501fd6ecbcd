// Package music supplies the background track for bulletin renders.
// Candidates fall through remote and local tiers like backgrounds do,
// but the chain bottoms out in pure-Go synthesis instead of a flat
// color, so a bulletin render always has an audio track available.
package music

import (
	"context"
	"math/rand"
	"path/filepath"
	"sort"
	"time"
)

// RemoteFetcher downloads one random matching file from a remote
// folder, reporting ok=false on any failure or timeout.
type RemoteFetcher interface {
	FetchRandom(ctx context.Context, folder string, exts []string) (string, bool)
}

// RemoteTier binds a fetcher to the folder it serves.
type RemoteTier struct {
	Fetcher RemoteFetcher
	Folder  string
}

var audioExts = []string{".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac"}

// Source enumerates file-backed music candidates. It remembers the
// last track it handed out so consecutive renders get different music
// whenever more than one file exists.
type Source struct {
	Remotes []RemoteTier
	Dir     string
	Rng     *rand.Rand

	lastUsed string
}

// Candidates returns file-backed music candidates in tier order:
// remote folders first, then one random local file that differs from
// the previous pick. The generated tiers are not listed here; the
// Normalizer synthesizes when this list is exhausted.
func (s *Source) Candidates(ctx context.Context) []string {
	var out []string

	for _, tier := range s.Remotes {
		if tier.Fetcher == nil || tier.Folder == "" {
			continue
		}
		if path, ok := tier.Fetcher.FetchRandom(ctx, tier.Folder, audioExts); ok {
			out = append(out, path)
			break
		}
	}

	if local := s.pickLocal(); local != "" {
		out = append(out, local)
	}

	return out
}

// MarkUsed records the track a render actually used, so the next
// local pick avoids repeating it.
func (s *Source) MarkUsed(path string) {
	s.lastUsed = path
}

func (s *Source) pickLocal() string {
	if s.Dir == "" {
		return ""
	}
	var files []string
	for _, ext := range audioExts {
		matches, err := filepath.Glob(filepath.Join(s.Dir, "*"+ext))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return ""
	}
	sort.Strings(files)

	available := files[:0:0]
	for _, f := range files {
		if f != s.lastUsed {
			available = append(available, f)
		}
	}
	if len(available) == 0 {
		available = files
	}
	return available[s.rng().Intn(len(available))]
}

func (s *Source) rng() *rand.Rand {
	if s.Rng == nil {
		s.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s.Rng
}
