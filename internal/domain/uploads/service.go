package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"vetco/internal/ports/files"

	"github.com/google/uuid"
)

var (
	ErrTooLarge     = errors.New("file exceeds the size limit")
	ErrEmptyFile    = errors.New("file is empty")
	ErrBadFilename  = errors.New("filename has no extension")
	ErrSizeMismatch = errors.New("file content does not match the declared size")
)

// Service sube archivos a un bucket de objetos. El chequeo de tamaño ocurre
// ANTES de tocar la red: un archivo que excede el límite nunca genera una
// llamada al store.
type Service struct {
	store     files.ObjectStore
	bucket    string
	maxSizeMB int64
	now       func() time.Time
}

func NewService(store files.ObjectStore, bucket string, maxSizeMB int64) *Service {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	return &Service{
		store:     store,
		bucket:    bucket,
		maxSizeMB: maxSizeMB,
		now:       time.Now,
	}
}

func (s *Service) MaxSizeBytes() int64 {
	return s.maxSizeMB * 1024 * 1024
}

// Upload guarda el archivo bajo la carpeta del dueño con un nombre generado
// (token aleatorio + millis de epoch + extensión original) y devuelve el
// path relativo al bucket. La URL pública se resuelve aparte, al renderizar.
func (s *Service) Upload(ctx context.Context, ownerID, filename string, size int64, r io.Reader) (string, error) {
	if size <= 0 {
		return "", ErrEmptyFile
	}
	if size > s.MaxSizeBytes() {
		return "", fmt.Errorf("%w: max %d MB", ErrTooLarge, s.maxSizeMB)
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		return "", ErrBadFilename
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")
	objectPath := fmt.Sprintf("%s/%s_%d.%s", ownerID, token, s.now().UnixMilli(), ext)

	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// El tamaño declarado ya pasó el límite, así que el buffer queda acotado.
	// Leer size+1 detecta un reader más largo que lo declarado sin truncarlo
	// en silencio.
	data, err := io.ReadAll(io.LimitReader(r, size+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) != size {
		return "", fmt.Errorf("%w: declared %d bytes, read %d", ErrSizeMismatch, size, len(data))
	}

	if err := s.store.Put(ctx, s.bucket, objectPath, contentType, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return objectPath, nil
}

// PublicURL resuelve la URL servible del path devuelto por Upload.
func (s *Service) PublicURL(objectPath string) string {
	if strings.TrimSpace(objectPath) == "" {
		return ""
	}
	return s.store.PublicURL(s.bucket, objectPath)
}
