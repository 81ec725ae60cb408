package gratitude

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/gratitude-api/pkg/apperr"
)

type fakeRepo struct {
	inserted []Note
	found    bool
	err      error
	resets   int
}

func (f *fakeRepo) Insert(_ context.Context, note Note) (*Note, error) {
	if f.err != nil {
		return nil, f.err
	}
	note.ID = int64(len(f.inserted) + 1)
	note.CreatedAt = time.Now().UTC()
	f.inserted = append(f.inserted, note)
	return &note, nil
}

func (f *fakeRepo) ListAll(context.Context) ([]Note, error) { return f.inserted, f.err }

func (f *fakeRepo) DeleteByID(context.Context, int64) (bool, error) { return f.found, f.err }

func (f *fakeRepo) DeleteAll(context.Context) error {
	f.resets++
	return f.err
}

func TestService_CreateValidates(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		repo := &fakeRepo{}
		svc := NewService(repo, nil)

		_, err := svc.Create(context.Background(), CreateNoteRequest{Content: content})

		var ve *apperr.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "content is required", ve.Fields["content"])
		assert.Empty(t, repo.inserted, "storage must not be touched")
	}
}

func TestService_CreateKeepsFieldsAsSent(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nil)

	note, err := svc.Create(context.Background(), CreateNoteRequest{Content: "  thankful for rain\n", Category: strPtr(" ")})
	require.NoError(t, err)
	assert.Equal(t, "  thankful for rain\n", note.Content)
	require.NotNil(t, note.Category)
	assert.Equal(t, " ", *note.Category)

	note, err = svc.Create(context.Background(), CreateNoteRequest{Content: "sunset"})
	require.NoError(t, err)
	assert.Nil(t, note.Category)
}

func TestService_Delete(t *testing.T) {
	repo := &fakeRepo{found: false}
	svc := NewService(repo, nil)

	err := svc.Delete(context.Background(), 3)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.EqualError(t, err, "gratitude note with id 3 not found")

	repo.found = true
	assert.NoError(t, svc.Delete(context.Background(), 3))
}

func TestService_StoragePassesThrough(t *testing.T) {
	storageErr := apperr.Storage("insert gratitude note", errors.New("disk I/O error"))
	repo := &fakeRepo{err: storageErr}
	svc := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateNoteRequest{Content: "x"})
	assert.ErrorIs(t, err, storageErr)

	err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, apperr.ErrStorage)

	err = svc.Reset(context.Background())
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.Equal(t, 1, repo.resets)
}
