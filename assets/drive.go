package assets

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"newsreel/background"
	"newsreel/config"
	"newsreel/music"
)

// Drive serves render assets out of shared Google Drive folders.
type Drive struct {
	service *drive.Service
	destDir string
	rng     *rand.Rand
}

var (
	_ background.RemoteFetcher = (*Drive)(nil)
	_ music.RemoteFetcher      = (*Drive)(nil)
)

// NewDrive authenticates with a service-account credentials file and
// readonly scope. Downloads land in destDir.
func NewDrive(ctx context.Context, credentialsFile, destDir string) (*Drive, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(data, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	client := jwtConfig.Client(ctx)

	service, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Drive{
		service: service,
		destDir: destDir,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// FetchRandom downloads one random file with a wanted extension from
// the Drive folder. A file already downloaded on an earlier call is
// reused without touching the network again.
func (d *Drive) FetchRandom(ctx context.Context, folderID string, exts []string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, config.RemoteFetchTimeout)
	defer cancel()

	list, err := d.service.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed = false", folderID)).
		PageSize(100).
		Fields("files(id, name)").
		Context(ctx).Do()
	if err != nil {
		log.Printf("⚠️ Drive list %s failed: %v", folderID, err)
		return "", false
	}

	var files []*drive.File
	for _, f := range list.Files {
		if matchesExt(f.Name, exts) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return "", false
	}

	pick := files[d.rng.Intn(len(files))]
	local := filepath.Join(d.destDir, "drive_"+pick.Name)
	if _, err := os.Stat(local); err == nil {
		return local, true
	}
	if err := d.download(ctx, pick.Id, local); err != nil {
		log.Printf("⚠️ Drive download %s failed: %v", pick.Name, err)
		return "", false
	}
	log.Printf("📥 Downloaded %s from Drive", pick.Name)
	return local, true
}

func (d *Drive) download(ctx context.Context, fileID, local string) error {
	resp, err := d.service.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return err
	}
	f, err := os.Create(local)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(local)
		return err
	}
	return f.Close()
}
