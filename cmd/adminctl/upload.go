package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"adminpro/console/internal/media/sniffer"
	"adminpro/console/internal/storage"
	"adminpro/console/internal/upload"
)

func (a *app) uploadCmd() *cobra.Command {
	var (
		category string
		direct   bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files to object storage via pre-signed URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var presigner upload.Presigner = a.api
			if direct {
				store, err := storage.NewObjectStore(a.cfg.Storage)
				if err != nil {
					return err
				}
				if err := store.EnsureBucket(cmd.Context()); err != nil {
					a.log.Warn().Err(err).Msg("ensure bucket failed")
				}
				presigner = store
			}

			files := make([]upload.File, 0, len(args))
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				contentType := ""
				if detected, err := sniffer.DetectHead(content); err == nil {
					contentType = detected.MIME
				} else if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
					contentType = byExt
				} else {
					contentType = "application/octet-stream"
				}
				files = append(files, upload.File{
					Name:        filepath.Base(path),
					ContentType: contentType,
					Content:     content,
				})
			}

			coordinator := upload.NewCoordinator(presigner, nil, a.log)
			infos, err := coordinator.UploadAll(cmd.Context(), category, files, upload.Hooks{
				OnComplete: func(_ int, info upload.UploadedFileInfo) {
					fmt.Printf("%s -> %s\n", info.Name, info.URL)
				},
				OnError: func(index int, err error) {
					fmt.Fprintf(os.Stderr, "%s failed: %v\n", files[index].Name, err)
				},
			})
			if err != nil {
				return err
			}
			fmt.Printf("uploaded %d file(s)\n", len(infos))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "storage category prefix")
	cmd.Flags().BoolVar(&direct, "direct", false, "presign locally against the object store instead of the backend")
	return cmd
}
