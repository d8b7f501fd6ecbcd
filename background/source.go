// Package background turns whatever asset is available (remote or local
// video, still image, or nothing at all) into a clip of exactly the
// target duration and canvas size. Selection falls through a fixed tier
// order and bottoms out at a flat color clip that always succeeds.
package background

import (
	"context"
	"math/rand"
	"path/filepath"
	"sort"
	"time"
)

// Kind tags the background source variants.
type Kind uint8

const (
	KindVideo Kind = iota
	KindImage
	KindGradient
	KindSolid
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindImage:
		return "image"
	case KindGradient:
		return "gradient"
	default:
		return "solid"
	}
}

// Source is one candidate background. Path is set for file-backed
// kinds; the procedural kinds carry no state.
type Source struct {
	Kind Kind
	Path string
}

// Mode selects narration or bulletin rendering behavior (gradient
// palette and motion choice differ).
type Mode uint8

const (
	ModeNarration Mode = iota
	ModeBulletin
)

// RemoteFetcher downloads one random matching file from a remote
// folder. It reports ok=false on any failure or timeout so the caller's
// fallback chain can proceed.
type RemoteFetcher interface {
	FetchRandom(ctx context.Context, folder string, exts []string) (string, bool)
}

// RemoteTier binds a fetcher to the folder it serves; folder ids are
// backend-specific (a Drive folder id, an S3 prefix).
type RemoteTier struct {
	Fetcher RemoteFetcher
	Folder  string
}

var (
	videoExts = []string{".mp4", ".mov"}
	imageExts = []string{".jpg", ".jpeg", ".png"}
)

// Finder enumerates background candidates in fallback order.
type Finder struct {
	Remotes        []RemoteTier
	BackgroundsDir string
	ImagesDir      string
	Rng            *rand.Rand
}

// Candidates returns the tier-ordered background sources for one render
// call. Remote tiers are consulted in order until one delivers; the two
// procedural tiers are always present so the list is never empty.
func (f *Finder) Candidates(ctx context.Context) []Source {
	var out []Source

	for _, tier := range f.Remotes {
		if tier.Fetcher == nil || tier.Folder == "" {
			continue
		}
		if path, ok := tier.Fetcher.FetchRandom(ctx, tier.Folder, videoExts); ok {
			out = append(out, Source{Kind: KindVideo, Path: path})
			break
		}
	}

	if videos := globExts(f.BackgroundsDir, videoExts); len(videos) > 0 {
		out = append(out, Source{Kind: KindVideo, Path: videos[f.rng().Intn(len(videos))]})
	}

	images := globExts(f.ImagesDir, imageExts)
	if len(images) == 0 {
		images = globExts(f.BackgroundsDir, imageExts)
	}
	if len(images) > 0 {
		out = append(out, Source{Kind: KindImage, Path: images[0]})
	}

	return append(out, Source{Kind: KindGradient}, Source{Kind: KindSolid})
}

func (f *Finder) rng() *rand.Rand {
	if f.Rng == nil {
		f.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return f.Rng
}

func globExts(dir string, exts []string) []string {
	if dir == "" {
		return nil
	}
	var files []string
	for _, ext := range exts {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+ext))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}
