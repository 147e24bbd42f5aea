package blobstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	contentTypeJSON  = "application/json"
	contentTypeJSONL = "application/x-ndjson"

	// minPartSize is the S3 minimum multipart part size (5 MiB)
	minPartSize int64 = 5 * 1024 * 1024
)

// Writer uploads JSON payloads to the client's bucket.
type Writer struct {
	client   *Client
	uploader *manager.Uploader
}

// NewWriter creates a new Writer for the client's bucket
func NewWriter(c *Client) *Writer {
	return &Writer{
		client: c,
		uploader: manager.NewUploader(c.s3, func(u *manager.Uploader) {
			u.PartSize = minPartSize
		}),
	}
}

// PutJSON uploads v as a single JSON object at key.
func (w *Writer) PutJSON(ctx context.Context, key string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("blobstore: marshal %s: %w", key, err)
	}

	_, err = w.client.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.client.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentTypeJSON),
	})
	if err != nil {
		return fmt.Errorf("blobstore: put object %s: %w", key, err)
	}

	w.client.log.Debug().Str("key", key).Int("bytes", len(body)).Msg("Object uploaded")
	return nil
}

// UploadJSONL uploads records as newline-delimited JSON through the multipart
// upload manager, which falls back to a single PUT for small payloads.
func (w *Writer) UploadJSONL(ctx context.Context, key string, records []interface{}) error {
	body, err := MarshalJSONL(records)
	if err != nil {
		return fmt.Errorf("blobstore: marshal %s: %w", key, err)
	}

	_, err = w.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(w.client.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentTypeJSONL),
	})
	if err != nil {
		return fmt.Errorf("blobstore: upload %s: %w", key, err)
	}

	w.client.log.Debug().Str("key", key).Int("records", len(records)).Msg("JSONL uploaded")
	return nil
}

// MarshalJSONL serialises records as one compact JSON document per line.
func MarshalJSONL(records []interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("jsonl encode record %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
