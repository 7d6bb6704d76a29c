// Package upload orchestrates direct-to-storage uploads: request pre-signed
// descriptors, PUT the raw bytes at the returned URLs, report the final
// object URLs. File bytes never pass through the application backend.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/rs/zerolog"

	"adminpro/console/internal/api"
)

// Presigner issues one upload descriptor per file, index-aligned with the
// input. The backend API and the direct object store both satisfy this.
type Presigner interface {
	PresignUploads(ctx context.Context, category string, files []api.FileSpec) ([]api.UploadDescriptor, error)
}

// File is one upload payload. Size must match the content length; progress
// fractions are computed against it.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

type UploadedFileInfo struct {
	Index int
	Name  string
	URL   string
}

// Hooks are per-file callbacks for the batch upload, keyed by input index.
// Any hook may be nil. OnProgress receives 0-100.
type Hooks struct {
	OnProgress func(index int, pct float64)
	OnComplete func(index int, info UploadedFileInfo)
	OnError    func(index int, err error)
}

type Coordinator struct {
	presigner Presigner
	http      *http.Client
	log       zerolog.Logger
}

func NewCoordinator(presigner Presigner, httpClient *http.Client, logger zerolog.Logger) *Coordinator {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Coordinator{
		presigner: presigner,
		http:      httpClient,
		log:       logger.With().Str("component", "upload").Logger(),
	}
}

// Upload pushes a single file and returns its public URL. Errors propagate
// untouched; there are no retries.
func (c *Coordinator) Upload(ctx context.Context, category string, file File, onProgress func(pct float64)) (string, error) {
	descriptors, err := c.presigner.PresignUploads(ctx, category, []api.FileSpec{
		{Name: file.Name, Type: file.ContentType},
	})
	if err != nil {
		return "", err
	}
	if len(descriptors) == 0 {
		return "", fmt.Errorf("presigner returned no descriptor for %s", file.Name)
	}

	descriptor := descriptors[0]
	if err := c.put(ctx, descriptor, file, onProgress); err != nil {
		return "", err
	}
	return descriptor.PublicURL(), nil
}

// UploadAll pushes all files concurrently against one up-front descriptor
// batch. The join waits for every upload to settle and then fails with the
// first error, in input order, if any occurred. Completed siblings are not
// rolled back; callers reconcile partial success from the OnComplete hooks
// they already received.
func (c *Coordinator) UploadAll(ctx context.Context, category string, files []File, hooks Hooks) ([]UploadedFileInfo, error) {
	if len(files) == 0 {
		return nil, nil
	}

	specs := make([]api.FileSpec, len(files))
	for i, file := range files {
		specs[i] = api.FileSpec{Name: file.Name, Type: file.ContentType}
	}
	descriptors, err := c.presigner.PresignUploads(ctx, category, specs)
	if err != nil {
		return nil, err
	}
	if len(descriptors) != len(files) {
		return nil, fmt.Errorf("presigner returned %d descriptors for %d files", len(descriptors), len(files))
	}

	infos := make([]UploadedFileInfo, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			var onProgress func(float64)
			if hooks.OnProgress != nil {
				onProgress = func(pct float64) { hooks.OnProgress(i, pct) }
			}

			if err := c.put(ctx, descriptors[i], files[i], onProgress); err != nil {
				errs[i] = err
				if hooks.OnError != nil {
					hooks.OnError(i, err)
				}
				return
			}

			infos[i] = UploadedFileInfo{
				Index: i,
				Name:  files[i].Name,
				URL:   descriptors[i].PublicURL(),
			}
			if hooks.OnComplete != nil {
				hooks.OnComplete(i, infos[i])
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", files[i].Name, err)
		}
	}
	return infos, nil
}

func (c *Coordinator) put(ctx context.Context, descriptor api.UploadDescriptor, file File, onProgress func(pct float64)) error {
	target := descriptor.PutTarget()
	if target == "" {
		return fmt.Errorf("descriptor for %s has no upload url", file.Name)
	}

	var body io.Reader = bytes.NewReader(file.Content)
	if onProgress != nil {
		body = &progressReader{r: body, total: int64(len(file.Content)), report: onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return fmt.Errorf("build put request: %w", err)
	}
	req.ContentLength = int64(len(file.Content))
	req.Header.Set("Content-Type", file.ContentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage put returned status %d", resp.StatusCode)
	}

	c.log.Debug().Str("file", file.Name).Str("url", descriptor.PublicURL()).Msg("uploaded")
	return nil
}
