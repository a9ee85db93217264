package object_storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	htransport "google.golang.org/api/transport/http"

	"github.com/Tureright/performance-test-k6/config"
)

type gcpStorage struct {
	client *storage.Client
	ctx    context.Context
	bucket string
}

func NewGcpStorage(c *config.DashboardConfig) (*gcpStorage, error) {
	ctx := context.Background()
	if c.ObjectStorage.RequireProxy {
		// The oauth2 lib fetches tokens with the http.Client found in its context
		log.Info("Setting up GCP OAuth client with proxy")
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPProxyClient)
	}
	client, err := newStorageClient(ctx, c)
	if err != nil {
		return nil, err
	}
	return &gcpStorage{
		client: client,
		ctx:    ctx,
		bucket: c.ObjectStorage.Bucket,
	}, nil
}

func newStorageClient(ctx context.Context, c *config.DashboardConfig) (*storage.Client, error) {
	if !c.ObjectStorage.RequireProxy {
		client, err := storage.NewClient(ctx)
		return client, errors.Wrap(err, "creating gcs client")
	}
	// A plain http.Client with a proxy does not authenticate with GCP, so the
	// authenticated transport is built first and the proxy transport is set as its base.
	creds, err := google.FindDefaultCredentials(ctx, storage.ScopeReadWrite)
	if err != nil {
		return nil, errors.Wrap(err, "finding gcp credentials")
	}
	log.Info("Setting up GCP storage client with proxy")
	baseTransportWithProxy, err := htransport.NewTransport(ctx, c.HTTPProxyClient.Transport,
		option.WithCredentials(creds))
	if err != nil {
		return nil, errors.Wrap(err, "creating gcs transport")
	}
	client, err := storage.NewClient(ctx, option.WithHTTPClient(&http.Client{Transport: baseTransportWithProxy}))
	return client, errors.Wrap(err, "creating gcs client")
}

func (gs *gcpStorage) GetUrl(filename string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", gs.bucket, filename)
}

func (gs *gcpStorage) Upload(filename string, content io.ReadCloser) error {
	defer content.Close()
	ctx, cancel := context.WithTimeout(gs.ctx, time.Minute*5)
	defer cancel()

	wc := gs.client.Bucket(gs.bucket).Object(filename).NewWriter(ctx)
	wc.ContentType = "text/html; charset=utf-8"
	wc.CacheControl = "no-cache"
	if _, err := io.Copy(wc, content); err != nil {
		wc.Close()
		return errors.Wrapf(err, "uploading %s", filename)
	}
	if err := wc.Close(); err != nil {
		return errors.Wrapf(err, "uploading %s", filename)
	}
	return nil
}
