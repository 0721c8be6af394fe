package document

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	documenterrors "go-hrms/internal/document/errors"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC) }
	return s
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"resume.pdf", "resume.pdf"},
		{"My Résumé (final).pdf", "My_Resume_final.pdf"},
		{"../../etc/passwd.txt", "passwd.txt"},
		{`C:\Users\me\cv.docx`, "cv.docx"},
		{"???", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestAllowedFile(t *testing.T) {
	assert.True(t, AllowedFile("cv.PDF"))
	assert.True(t, AllowedFile("photo.jpeg"))
	assert.False(t, AllowedFile("script.exe"))
	assert.False(t, AllowedFile("noext"))
}

func TestLocalStore_SaveAndOpen(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stored, err := s.Save(ctx, TypeResume, "my cv.txt", strings.NewReader("hello world"))
	assert.NoError(t, err)
	assert.Equal(t, "resumes/20240305_140709_my_cv.txt", stored.Reference)
	assert.Equal(t, int64(11), stored.Size)
	assert.True(t, strings.HasPrefix(stored.ContentType, "text/plain"))

	rc, err := s.Open(ctx, stored.Reference)
	assert.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
}

func TestLocalStore_SaveSameSecondKeepsBoth(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, TypeCertificate, "cert.pdf", bytes.NewReader([]byte("%PDF-1.4 a")))
	assert.NoError(t, err)
	second, err := s.Save(ctx, TypeCertificate, "cert.pdf", bytes.NewReader([]byte("%PDF-1.4 b")))
	assert.NoError(t, err)

	assert.NotEqual(t, first.Reference, second.Reference)
	assert.Equal(t, "certificates/20240305_140709_cert_1.pdf", second.Reference)
}

func TestLocalStore_SaveRejects(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, TypeResume, "virus.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, documenterrors.ErrUnsupportedFileType)

	_, err = s.Save(ctx, "secrets", "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, documenterrors.ErrInvalidDocumentType)

	_, err = s.Save(ctx, TypeResume, "", strings.NewReader("x"))
	assert.ErrorIs(t, err, documenterrors.ErrEmptyFile)

	_, err = s.Save(ctx, TypeResume, "empty.txt", strings.NewReader(""))
	assert.ErrorIs(t, err, documenterrors.ErrEmptyFile)
}

func TestLocalStore_OpenRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Open(context.Background(), "../outside.txt")
	assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)

	_, err = s.Open(context.Background(), "resumes/missing.txt")
	assert.ErrorIs(t, err, documenterrors.ErrDocumentNotFound)
}
