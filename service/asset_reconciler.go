package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tnqbao/gau-showcase-service/infra"
	"golang.org/x/sync/errgroup"
)

const maxParallelTransfers = 4

var ErrInvalidFile = errors.New("invalid file")

// File is one submitted upload. Name is the original filename and doubles as
// the object key.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// AssetReconciler keeps a record's stored assets in step with a newly
// submitted file set. Deletes are best-effort and uploads must all succeed;
// callers persist the returned URLs only when no error came back.
type AssetReconciler struct {
	store      infra.ObjectStore
	logger     *infra.LoggerClient
	maxTries   uint
	maxElapsed time.Duration
	newBackOff func() backoff.BackOff
}

type Option func(*AssetReconciler)

// WithRetryPolicy overrides how failed deletes are retried.
func WithRetryPolicy(maxTries uint, maxElapsed time.Duration, newBackOff func() backoff.BackOff) Option {
	return func(r *AssetReconciler) {
		r.maxTries = maxTries
		r.maxElapsed = maxElapsed
		r.newBackOff = newBackOff
	}
}

func NewAssetReconciler(store infra.ObjectStore, logger *infra.LoggerClient, opts ...Option) *AssetReconciler {
	r := &AssetReconciler{
		store:      store,
		logger:     logger,
		maxTries:   3,
		maxElapsed: 5 * time.Second,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			return b
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile deletes every existing asset whose filename is not resubmitted,
// uploads the submitted files and returns the new URL list: survivors in their
// original order followed by new URLs in submission order.
func (r *AssetReconciler) Reconcile(ctx context.Context, bucket string, existing []string, submitted []File) ([]string, error) {
	if err := validateFiles(submitted); err != nil {
		return nil, err
	}

	submittedNames := make(map[string]struct{}, len(submitted))
	for _, file := range submitted {
		submittedNames[file.Name] = struct{}{}
	}

	var survivors, toDelete []string
	for _, url := range existing {
		if _, ok := submittedNames[infra.KeyFromURL(url)]; ok {
			survivors = append(survivors, url)
		} else {
			toDelete = append(toDelete, url)
		}
	}

	r.RemoveAll(ctx, bucket, toDelete)

	uploaded, err := r.uploadAll(ctx, bucket, submitted)
	if err != nil {
		return nil, err
	}

	return mergeURLs(survivors, submitted, uploaded), nil
}

// UploadAll stores files for a new record. On failure the objects that did
// make it are removed again.
func (r *AssetReconciler) UploadAll(ctx context.Context, bucket string, files []File) ([]string, error) {
	if err := validateFiles(files); err != nil {
		return nil, err
	}

	uploaded, err := r.uploadAll(ctx, bucket, files)
	if err != nil {
		var stored []string
		for _, url := range uploaded {
			if url != "" {
				stored = append(stored, url)
			}
		}
		r.RemoveAll(ctx, bucket, stored)
		return nil, err
	}
	return uploaded, nil
}

// ReplaceSingle swaps a single-asset field. A nil file keeps the current
// reference untouched; on upload failure nothing is persisted. persist may be
// nil when no record references the asset.
func (r *AssetReconciler) ReplaceSingle(ctx context.Context, bucket string, current *string, file *File, persist func(ctx context.Context, url *string) error) (*string, error) {
	if file == nil {
		return current, nil
	}
	if err := validateFiles([]File{*file}); err != nil {
		return nil, err
	}

	if current != nil && *current != "" && infra.KeyFromURL(*current) != file.Name {
		r.RemoveAll(ctx, bucket, []string{*current})
	}

	if err := r.upload(ctx, bucket, *file); err != nil {
		return nil, err
	}

	url := r.store.URL(bucket, file.Name)
	if persist != nil {
		if err := persist(ctx, &url); err != nil {
			return nil, err
		}
	}
	return &url, nil
}

// ClearSingle removes the current asset (best-effort) and persists an empty
// reference.
func (r *AssetReconciler) ClearSingle(ctx context.Context, bucket string, current *string, persist func(ctx context.Context, url *string) error) error {
	if current != nil && *current != "" {
		r.RemoveAll(ctx, bucket, []string{*current})
	}
	return persist(ctx, nil)
}

// RemoveAll deletes the objects behind urls concurrently. Failures are logged
// after the retries run out and never returned. Removal outlives a cancelled
// request: the record no longer references these objects.
func (r *AssetReconciler) RemoveAll(ctx context.Context, bucket string, urls []string) {
	if len(urls) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(maxParallelTransfers)
	for _, url := range urls {
		key := infra.KeyFromURL(url)
		if key == "" {
			continue
		}
		g.Go(func() error {
			if err := r.removeWithRetry(ctx, bucket, key); err != nil {
				r.logger.ErrorWithContextf(ctx, err, "[Assets] Failed to delete %s/%s, leaving it orphaned", bucket, key)
				return nil
			}
			r.logger.DebugWithContextf(ctx, "[Assets] Deleted %s/%s", bucket, key)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *AssetReconciler) removeWithRetry(ctx context.Context, bucket, key string) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, r.store.Remove(ctx, bucket, key)
	},
		backoff.WithBackOff(r.newBackOff()),
		backoff.WithMaxTries(r.maxTries),
		backoff.WithMaxElapsedTime(r.maxElapsed),
	)
	return err
}

// uploadAll returns one URL per file, in file order. The first failure cancels
// the remaining uploads.
func (r *AssetReconciler) uploadAll(ctx context.Context, bucket string, files []File) ([]string, error) {
	urls := make([]string, len(files))
	if len(files) == 0 {
		return urls, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelTransfers)
	for i, file := range files {
		g.Go(func() error {
			if err := r.upload(gctx, bucket, file); err != nil {
				return err
			}
			urls[i] = r.store.URL(bucket, file.Name)
			return nil
		})
	}

	err := g.Wait()
	return urls, err
}

func (r *AssetReconciler) upload(ctx context.Context, bucket string, file File) error {
	body, err := file.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer body.Close()

	if err := r.store.Store(ctx, bucket, file.Name, body, file.Size, file.ContentType); err != nil {
		r.logger.ErrorWithContextf(ctx, err, "[Assets] Failed to upload %s/%s", bucket, file.Name)
		return err
	}
	r.logger.DebugWithContextf(ctx, "[Assets] Uploaded %s/%s", bucket, file.Name)
	return nil
}

// validateFiles rejects names that cannot be used as keys. Names must be
// unique within one submission since they address the same object.
func validateFiles(files []File) error {
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		if strings.TrimSpace(file.Name) == "" || strings.ContainsAny(file.Name, "/\\") {
			return fmt.Errorf("%w: unusable filename %q", ErrInvalidFile, file.Name)
		}
		if file.Open == nil {
			return fmt.Errorf("%w: %s has no content", ErrInvalidFile, file.Name)
		}
		if _, ok := seen[file.Name]; ok {
			return fmt.Errorf("%w: %s submitted more than once", ErrInvalidFile, file.Name)
		}
		seen[file.Name] = struct{}{}
	}
	return nil
}

// mergeURLs keeps each survivor at its position, refreshed to the URL it was
// just stored under, and appends the remaining uploads in submission order.
func mergeURLs(survivors []string, submitted []File, uploaded []string) []string {
	byKey := make(map[string]string, len(submitted))
	for i, file := range submitted {
		byKey[file.Name] = uploaded[i]
	}

	result := make([]string, 0, len(survivors)+len(uploaded))
	placed := make(map[string]struct{}, len(survivors)+len(uploaded))
	for _, url := range survivors {
		key := infra.KeyFromURL(url)
		if _, ok := placed[key]; ok {
			continue
		}
		placed[key] = struct{}{}
		result = append(result, byKey[key])
	}
	for _, file := range submitted {
		if _, ok := placed[file.Name]; ok {
			continue
		}
		placed[file.Name] = struct{}{}
		result = append(result, byKey[file.Name])
	}
	return result
}
