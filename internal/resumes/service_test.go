package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careergenie-backend/internal/extract"
	"careergenie-backend/internal/llm"
	"careergenie-backend/internal/profile"
	"careergenie-backend/internal/resume"
	"careergenie-backend/internal/shared/storage/object"
)

type stubExtractor struct {
	out resume.Structured
	err error
}

func (s stubExtractor) Run(context.Context, []byte, string) (resume.Structured, error) {
	return s.out, s.err
}

type spyRepo struct {
	*MemoryRepo
	creates   int
	createErr error
}

func (r *spyRepo) Create(ctx context.Context, res Resume) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	return r.MemoryRepo.Create(ctx, res)
}

type spyStore struct {
	blobs   map[string][]byte
	puts    int
	deletes []string
	putErr  error
	delErr  error
}

func newSpyStore() *spyStore { return &spyStore{blobs: map[string][]byte{}} }

func (s *spyStore) Put(_ context.Context, key, _ string, r io.Reader) (int64, error) {
	s.puts++
	if s.putErr != nil {
		return 0, s.putErr
	}
	b, _ := io.ReadAll(r)
	s.blobs[key] = b
	return int64(len(b)), nil
}

func (s *spyStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	b, ok := s.blobs[key]
	if !ok {
		return nil, object.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *spyStore) Delete(_ context.Context, key string) error {
	s.deletes = append(s.deletes, key)
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.blobs, key)
	return nil
}

type countingMirror struct{ calls int }

func (m *countingMirror) Mirror(context.Context, string, string, resume.Structured) profile.Outcome {
	m.calls++
	return profile.Outcome{Attempted: 2, Written: 2}
}

func parsedFallback() resume.Structured {
	s := resume.Structured{PersonalInfo: resume.PersonalInfo{Name: "John Doe"}}
	s.Normalize()
	s.StampFallback()
	return s
}

func newTestService(ext Extractor) (*Service, *spyRepo, *spyStore, *countingMirror) {
	repo := &spyRepo{MemoryRepo: NewMemoryRepo()}
	store := newSpyStore()
	mirror := &countingMirror{}
	ids := 0
	svc := &Service{
		Extractor: ext,
		Store:     store,
		Repo:      repo,
		Profile:   mirror,
		Now:       func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			ids++
			return "r" + strings.Repeat("x", ids)
		},
	}
	return svc, repo, store, mirror
}

func TestParsePersistsAndMirrors(t *testing.T) {
	svc, repo, store, mirror := newTestService(stubExtractor{out: parsedFallback()})

	got, err := svc.Parse(context.Background(), "u1", "cv.txt", []byte("John Doe"))
	require.NoError(t, err)

	assert.Equal(t, resume.MethodFallback, got.Resume.ProcessingMethod)
	assert.Equal(t, "text/plain", got.Resume.ContentType)
	assert.Equal(t, int64(8), got.Resume.FileSize)
	assert.True(t, strings.HasPrefix(got.Resume.StorageKey, "resumes/"))
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, []byte("John Doe"), store.blobs[got.Resume.StorageKey])
	assert.Equal(t, 1, mirror.calls)
	assert.Equal(t, 2, got.ProfileSync.Written)
}

func TestParseStrictLLMFailurePersistsNothing(t *testing.T) {
	failure := &llm.ExtractionError{Op: "generate", Err: errors.New("timeout")}
	svc, repo, store, mirror := newTestService(stubExtractor{err: failure})

	_, err := svc.Parse(context.Background(), "u1", "cv.pdf", []byte("%PDF-1.4"))
	require.ErrorIs(t, err, llm.ErrExtraction)

	assert.Equal(t, 0, repo.creates)
	assert.Equal(t, 0, store.puts)
	assert.Equal(t, 0, mirror.calls)
}

func TestParseDecodeErrorPersistsNothing(t *testing.T) {
	decodeErr := &extract.DecodeError{FileName: "cv.pdf", Format: "pdf", Err: errors.New("empty file")}
	svc, repo, store, _ := newTestService(stubExtractor{err: decodeErr})

	_, err := svc.Parse(context.Background(), "u1", "cv.pdf", nil)
	require.ErrorIs(t, err, extract.ErrDecode)
	assert.Equal(t, 0, repo.creates)
	assert.Equal(t, 0, store.puts)
}

func TestParseRecordFailureCleansUpBlob(t *testing.T) {
	svc, repo, store, mirror := newTestService(stubExtractor{out: parsedFallback()})
	repo.createErr = errors.New("connection reset")

	_, err := svc.Parse(context.Background(), "u1", "cv.txt", []byte("John Doe"))
	require.ErrorIs(t, err, ErrPersistence)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "create record", perr.Op)
	assert.Len(t, store.deletes, 1)
	assert.Empty(t, store.blobs)
	assert.Equal(t, 0, mirror.calls)
}

func TestParseBlobFailureIsPersistenceError(t *testing.T) {
	svc, repo, store, _ := newTestService(stubExtractor{out: parsedFallback()})
	store.putErr = errors.New("bucket gone")

	_, err := svc.Parse(context.Background(), "u1", "cv.txt", []byte("John Doe"))
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 0, repo.creates)
}

func TestGetAndDeleteEnforceOwnership(t *testing.T) {
	svc, _, store, _ := newTestService(stubExtractor{out: parsedFallback()})
	ctx := context.Background()

	parsed, err := svc.Parse(ctx, "owner", "cv.txt", []byte("John Doe"))
	require.NoError(t, err)
	id := parsed.Resume.ID

	_, err = svc.Get(ctx, "intruder", id)
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, "intruder", id), ErrForbidden)

	_, err = svc.Get(ctx, "owner", "missing")
	require.ErrorIs(t, err, ErrNotFound)

	store.delErr = errors.New("transient")
	require.NoError(t, svc.Delete(ctx, "owner", id))
	_, err = svc.Get(ctx, "owner", id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirstWithLimit(t *testing.T) {
	svc, _, _, _ := newTestService(stubExtractor{out: parsedFallback()})
	ctx := context.Background()
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	var last string
	for i := 0; i < 3; i++ {
		got, err := svc.Parse(ctx, "u1", "cv.txt", []byte("John Doe"))
		require.NoError(t, err)
		last = got.Resume.ID
	}

	list, err := svc.List(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, last, list[0].ID)

	latest, err := svc.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, last, latest.ID)

	_, err = svc.Latest(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUploadStoresBlobOnly(t *testing.T) {
	svc, repo, store, _ := newTestService(stubExtractor{})

	up, err := svc.Upload(context.Background(), "u1", "cv.pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.NotEmpty(t, up.FileID)
	assert.Contains(t, store.blobs, up.StorageKey)
	assert.Equal(t, 0, repo.creates)

	_, err = svc.Upload(context.Background(), "u1", "cv.pdf", nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ClampLimit(0))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxListLimit, ClampLimit(51))
}
