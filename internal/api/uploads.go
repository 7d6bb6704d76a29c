package api

import (
	"context"
	"fmt"
)

const pathPresignedUpload = "/tenant/s3/presigned-upload"

type FileSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// UploadDescriptor is one pre-signed upload slot. Older backend versions use
// url/src, current ones uploadUrl/keyWithBaseUrl; both are tolerated.
type UploadDescriptor struct {
	UploadURL      string `json:"uploadUrl"`
	URL            string `json:"url"`
	KeyWithBaseURL string `json:"keyWithBaseUrl"`
	Src            string `json:"src"`
}

// PutTarget is the URL the file bytes are PUT to.
func (d UploadDescriptor) PutTarget() string {
	if d.UploadURL != "" {
		return d.UploadURL
	}
	return d.URL
}

// PublicURL is the object's final address, reported back to the backend forms.
func (d UploadDescriptor) PublicURL() string {
	if d.KeyWithBaseURL != "" {
		return d.KeyWithBaseURL
	}
	return d.Src
}

type presignRequest struct {
	Category string     `json:"category,omitempty"`
	Files    []FileSpec `json:"files"`
}

// PresignUploads requests one descriptor per file, index-aligned with the
// input.
func (c *Client) PresignUploads(ctx context.Context, category string, files []FileSpec) ([]UploadDescriptor, error) {
	var out dataEnvelope[[]UploadDescriptor]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(presignRequest{Category: category, Files: files}).
		SetResult(&out).
		Post(pathPresignedUpload)
	if err != nil {
		return nil, err
	}
	if len(out.Data) != len(files) {
		return nil, fmt.Errorf("presign: got %d descriptors for %d files", len(out.Data), len(files))
	}
	return out.Data, nil
}

type presignByNameRequest struct {
	FileList []struct {
		FileName string `json:"fileName"`
	} `json:"fileList"`
}

// PresignUploadByName is the older single-file request shape still used by
// the KYC document capture flow.
func (c *Client) PresignUploadByName(ctx context.Context, fileName string) (UploadDescriptor, error) {
	var req presignByNameRequest
	req.FileList = append(req.FileList, struct {
		FileName string `json:"fileName"`
	}{FileName: fileName})

	var out dataEnvelope[[]UploadDescriptor]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post(pathPresignedUpload)
	if err != nil {
		return UploadDescriptor{}, err
	}
	if len(out.Data) == 0 {
		return UploadDescriptor{}, fmt.Errorf("presign: empty descriptor list")
	}
	return out.Data[0], nil
}
