package files

import (
	"context"
	"io"
)

// ObjectStore abstrae el object storage remoto (Supabase Storage).
// Put guarda bytes bajo bucket/path; PublicURL resuelve la URL pública
// sin red (es una convención de paths del proveedor).
type ObjectStore interface {
	Put(ctx context.Context, bucket, path, contentType string, r io.Reader) error
	PublicURL(bucket, path string) string
}
