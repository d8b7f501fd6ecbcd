// Package assets resolves the files renders draw from: font faces,
// Google Drive folders, and S3 buckets. Remote fetchers satisfy the
// background and music packages' remote-tier contracts.
package assets

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"newsreel/config"
)

// FontSet carries every face size the renderers draw with.
type FontSet struct {
	Hook        font.Face
	Caption     font.Face
	Thumb       font.Face
	BoardHeader font.Face
	BoardTitle  font.Face
	BoardNumber font.Face
}

// LoadFonts builds the face set from the configured font files. A
// missing or unparsable file falls back to any .ttf in the fonts dir,
// then to the built-in bitmap face, so rendering always has a face.
func LoadFonts(cfg *config.Config) FontSet {
	bold := loadSource(cfg.FontBoldPath(), cfg.FontsDir)
	regular := loadSource(cfg.FontRegularPath(), cfg.FontsDir)
	return FontSet{
		Hook:        face(bold, 150),
		Caption:     face(regular, 110),
		Thumb:       face(regular, 100),
		BoardHeader: face(bold, 80),
		BoardTitle:  face(regular, 60),
		BoardNumber: face(bold, 50),
	}
}

func loadSource(path, fontsDir string) *opentype.Font {
	if f := parseFontFile(path); f != nil {
		return f
	}
	matches, _ := filepath.Glob(filepath.Join(fontsDir, "*.ttf"))
	for _, m := range matches {
		if f := parseFontFile(m); f != nil {
			log.Printf("⚠️ Font %s unavailable, using %s", filepath.Base(path), filepath.Base(m))
			return f
		}
	}
	log.Printf("⚠️ No usable font files under %s, falling back to the built-in face", fontsDir)
	return nil
}

func parseFontFile(path string) *opentype.Font {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		log.Printf("⚠️ Font %s unusable: %v", filepath.Base(path), err)
		return nil
	}
	return f
}

func face(src *opentype.Font, size float64) font.Face {
	if src == nil {
		return basicfont.Face7x13
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return f
}

// matchesExt reports whether name carries one of the extensions,
// case-insensitively.
func matchesExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
