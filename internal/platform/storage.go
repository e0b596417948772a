package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
)

// Upload stores an object in a storage bucket.
func (c *Client) Upload(ctx context.Context, bucket, objectPath string, data []byte, contentType string) error {
	headers := map[string]string{"Content-Type": contentType}
	path := fmt.Sprintf("/storage/v1/object/%s/%s", bucket, objectPath)

	resp, err := c.do(ctx, "POST", path, headers, bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("upload %s: %w", objectPath, decodeAPIError(resp))
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

// PublicURL returns the unauthenticated URL of an object in a public
// bucket.
func (c *Client) PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, bucket, objectPath)
}
