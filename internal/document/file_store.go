package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	documenterrors "go-hrms/internal/document/errors"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
)

const (
	TypeResume      = "resumes"
	TypeCertificate = "certificates"
	TypePayslip     = "payslips"
	TypeOfferLetter = "offer_letters"

	MaxUploadBytes int64 = 16 << 20
)

var allowedExtensions = map[string]struct{}{
	"txt":  {},
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
	"doc":  {},
	"docx": {},
}

var documentTypes = map[string]struct{}{
	TypeResume:      {},
	TypeCertificate: {},
	TypePayslip:     {},
	TypeOfferLetter: {},
}

// StoredFile describes a saved document. Reference is the stable handle
// recorded on entities.
type StoredFile struct {
	Reference   string `json:"reference"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

//go:generate mockgen -source=file_store.go -destination=mock/file_store_mock.go -package=mock
type FileStore interface {
	Save(ctx context.Context, docType, filename string, r io.Reader) (StoredFile, error)
	Open(ctx context.Context, reference string) (io.ReadCloser, error)
}

type LocalStore struct {
	root   string
	now    func() time.Time
	logger *zap.Logger
}

func NewLocalStore(root string, logger ...*zap.Logger) (*LocalStore, error) {
	l := zap.L().Named("document.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.store")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root, now: time.Now, logger: l}, nil
}

// AllowedFile reports whether filename carries an accepted extension.
func AllowedFile(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	_, ok := allowedExtensions[ext]
	return ok
}

// SanitizeFilename transliterates to ASCII and keeps letters, digits, dot,
// dash and underscore. Whitespace becomes underscore.
func SanitizeFilename(filename string) string {
	name := unidecode.Unidecode(filepath.Base(strings.ReplaceAll(filename, "\\", "/")))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}

	clean := strings.Trim(b.String(), "._")
	if clean == "" {
		return "file"
	}
	return clean
}

func (s *LocalStore) Save(ctx context.Context, docType, filename string, r io.Reader) (StoredFile, error) {
	if _, ok := documentTypes[docType]; !ok {
		return StoredFile{}, documenterrors.ErrInvalidDocumentType
	}
	if strings.TrimSpace(filename) == "" {
		return StoredFile{}, documenterrors.ErrEmptyFile
	}
	if !AllowedFile(filename) {
		return StoredFile{}, documenterrors.ErrUnsupportedFileType
	}

	dir := filepath.Join(s.root, docType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, err
	}

	base := s.now().Format("20060102_150405_") + SanitizeFilename(filename)
	f, name, err := createUnique(dir, base)
	if err != nil {
		return StoredFile{}, err
	}

	written, err := io.Copy(f, io.LimitReader(r, MaxUploadBytes+1))
	closeErr := f.Close()
	fullPath := filepath.Join(dir, name)
	if err == nil {
		err = closeErr
	}
	if err == nil && written > MaxUploadBytes {
		err = documenterrors.ErrFileTooLarge
	}
	if err == nil && written == 0 {
		err = documenterrors.ErrEmptyFile
	}
	if err != nil {
		_ = os.Remove(fullPath)
		return StoredFile{}, err
	}

	contentType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(fullPath); err == nil {
		contentType = mt.String()
	}

	stored := StoredFile{
		Reference:   path.Join(docType, name),
		Filename:    name,
		ContentType: contentType,
		Size:        written,
	}
	s.logger.Info("document stored",
		zap.String("reference", stored.Reference),
		zap.String("content_type", contentType),
		zap.Int64("size", written),
	)
	return stored, nil
}

func (s *LocalStore) Open(ctx context.Context, reference string) (io.ReadCloser, error) {
	clean := path.Clean("/" + reference)[1:]
	if clean == "" || clean != reference {
		return nil, documenterrors.ErrDocumentNotFound
	}
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(clean)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return f, nil
}

func createUnique(dir, base string) (*os.File, string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for i := 1; i <= 100; i++ {
		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
		name = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
	return nil, "", fmt.Errorf("could not allocate a unique name for %s", base)
}
