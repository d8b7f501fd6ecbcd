package music

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRemote struct {
	path   string
	ok     bool
	calls  int
	folder string
}

func (f *fakeRemote) FetchRandom(_ context.Context, folder string, _ []string) (string, bool) {
	f.calls++
	f.folder = folder
	return f.path, f.ok
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCandidatesRemoteFirst(t *testing.T) {
	dir := t.TempDir()
	local := touch(t, dir, "beat.mp3")
	remote := &fakeRemote{path: "/tmp/remote.mp3", ok: true}

	s := &Source{
		Remotes: []RemoteTier{{Fetcher: remote, Folder: "folder-abc"}},
		Dir:     dir,
		Rng:     rand.New(rand.NewSource(1)),
	}

	got := s.Candidates(context.Background())
	if len(got) != 2 {
		t.Fatalf("Candidates returned %d entries; want 2", len(got))
	}
	if got[0] != "/tmp/remote.mp3" {
		t.Fatalf("first candidate = %q; want the remote file", got[0])
	}
	if got[1] != local {
		t.Fatalf("second candidate = %q; want %q", got[1], local)
	}
	if remote.folder != "folder-abc" {
		t.Fatalf("remote fetched from %q; want folder-abc", remote.folder)
	}
}

func TestCandidatesAvoidsLastUsed(t *testing.T) {
	dir := t.TempDir()
	a := touch(t, dir, "a.mp3")
	b := touch(t, dir, "b.mp3")

	s := &Source{Dir: dir, Rng: rand.New(rand.NewSource(1))}
	s.MarkUsed(a)

	got := s.Candidates(context.Background())
	if len(got) != 1 || got[0] != b {
		t.Fatalf("Candidates after using %q = %v; want [%q]", a, got, b)
	}
}

func TestCandidatesResetsWhenAllUsed(t *testing.T) {
	dir := t.TempDir()
	only := touch(t, dir, "only.wav")

	s := &Source{Dir: dir, Rng: rand.New(rand.NewSource(1))}
	s.MarkUsed(only)

	got := s.Candidates(context.Background())
	if len(got) != 1 || got[0] != only {
		t.Fatalf("Candidates with the sole file used = %v; want it again", got)
	}
}

func TestCandidatesSkipsRemoteWithoutFolder(t *testing.T) {
	remote := &fakeRemote{path: "/tmp/remote.mp3", ok: true}
	s := &Source{Remotes: []RemoteTier{{Fetcher: remote}}}

	if got := s.Candidates(context.Background()); len(got) != 0 {
		t.Fatalf("Candidates = %v; want none", got)
	}
	if remote.calls != 0 {
		t.Fatalf("remote consulted %d times without a folder id; want 0", remote.calls)
	}
}

func TestProduceSynthesizesWhenNoAssets(t *testing.T) {
	remote := &fakeRemote{ok: false}
	src := &Source{Remotes: []RemoteTier{{Fetcher: remote, Folder: "folder-abc"}}, Dir: t.TempDir()}
	n := NewNormalizer(src, t.TempDir(), rand.New(rand.NewSource(1)))

	path, err := n.Produce(context.Background(), 20)
	if err != nil {
		t.Fatalf("Produce: %v", err)
	}
	if !strings.HasSuffix(path, ".wav") {
		t.Fatalf("Produce returned %q; want a synthesized wav", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	wantSize := int64(44 + 20*sampleRate*4)
	if info.Size() != wantSize {
		t.Fatalf("output size = %d; want %d (20s of stereo pcm)", info.Size(), wantSize)
	}
	if remote.calls != 1 {
		t.Fatalf("remote consulted %d times; want 1", remote.calls)
	}
}

func TestProduceFailsWhenNothingWritable(t *testing.T) {
	src := &Source{}
	n := NewNormalizer(src, filepath.Join(t.TempDir(), "missing"), rand.New(rand.NewSource(1)))

	if _, err := n.Produce(context.Background(), 5); err == nil {
		t.Fatal("Produce with an unwritable temp dir returned nil error")
	}
}
