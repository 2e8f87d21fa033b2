package files

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainative/zerodb-go/internal/testutil"
	"github.com/ainative/zerodb-go/testing/mocks"
	"github.com/ainative/zerodb-go/validation"
)

const basePath = "/api/v1/zerodb/" + testutil.ProjectID + "/database/files"

func newService() (*Service, *mocks.MockRequester) {
	m := &mocks.MockRequester{}
	return NewService(m, testutil.Validator()), m
}

func TestUploadBytesEncodes(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("POST", basePath).Return(UploadResponse{FileID: "f1", SizeBytes: 5}, nil)

	resp, err := svc.UploadBytes(context.Background(), testutil.ProjectID, "hello.txt", []byte("hello"), "text/plain",
		map[string]any{"owner": "tests"})
	require.NoError(t, err)
	assert.Equal(t, "f1", resp.FileID)

	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", body["file_data"])
	assert.Equal(t, "text/plain", body["content_type"])
	assert.Equal(t, map[string]any{"owner": "tests"}, body["file_metadata"])
}

func TestUploadRejectsInvalidPayload(t *testing.T) {
	svc, m := newService()
	_, err := svc.Upload(context.Background(), UploadRequest{
		ProjectID: testutil.ProjectID, FileName: "x", FileData: "not base64!!", ContentType: "text/plain",
	})
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
	assert.Empty(t, m.Requests())
}

func TestDownloadDecodes(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("GET", basePath+"/f1").Return(File{
		FileName: "hello.txt", FileData: base64.StdEncoding.EncodeToString([]byte("hello")),
	}, nil)

	data, f, err := svc.Download(context.Background(), testutil.ProjectID, "f1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Equal(t, "hello.txt", f.FileName)
}

func TestDownloadCorruptPayload(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("GET", basePath+"/f1").Return(File{FileData: "%%%"}, nil)

	_, f, err := svc.Download(context.Background(), testutil.ProjectID, "f1")
	require.Error(t, err)
	assert.NotNil(t, f)
	assert.Contains(t, err.Error(), "decode file f1")
}

func TestListMetadataDelete(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()
	m.ExpectCall("GET", basePath).Return(ListResponse{TotalCount: 1, Files: []Metadata{{FileID: "f1"}}}, nil)
	m.ExpectCall("GET", basePath+"/f1/metadata").Return(Metadata{FileID: "f1", SizeBytes: 10}, nil)
	m.ExpectCall("DELETE", basePath+"/f1").Return(DeleteResponse{Status: "deleted", FreedBytes: 10}, nil)

	list, err := svc.List(ctx, ListRequest{ProjectID: testutil.ProjectID, Prefix: "docs/", Offset: 10})
	require.NoError(t, err)
	assert.Len(t, list.Files, 1)
	q := m.LastRequest().Query
	assert.Equal(t, "docs/", q.Get("prefix"))
	assert.Equal(t, "10", q.Get("offset"))
	assert.False(t, q.Has("limit"))

	meta, err := svc.Metadata(ctx, testutil.ProjectID, "f1")
	require.NoError(t, err)
	assert.EqualValues(t, 10, meta.SizeBytes)

	del, err := svc.Delete(ctx, testutil.ProjectID, "f1")
	require.NoError(t, err)
	assert.EqualValues(t, 10, del.FreedBytes)
	m.AssertExpectations(t)
}

func TestPresignedURL(t *testing.T) {
	svc, m := newService()
	m.ExpectCall("POST", basePath+"/f1/presigned-url").Return(PresignedURLResponse{PresignedURL: "https://s3/x"}, nil)

	out, err := svc.PresignedURL(context.Background(), PresignedURLRequest{
		ProjectID: testutil.ProjectID, FileID: "f1", Operation: OperationDownload,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://s3/x", out.PresignedURL)

	body, err := mocks.BodyAs(m.LastRequest())
	require.NoError(t, err)
	assert.EqualValues(t, DefaultPresignExpiration, body["expiration_seconds"])
	assert.Equal(t, "download", body["operation"])

	_, err = svc.PresignedURL(context.Background(), PresignedURLRequest{
		ProjectID: testutil.ProjectID, FileID: "f1", Operation: "delete",
	})
	assert.ErrorIs(t, err, validation.ErrInvalidRequest)
}

func TestBlankFileIDNeverReachesCollection(t *testing.T) {
	svc, m := newService()
	ctx := context.Background()

	calls := map[string]func() error{
		"get":      func() error { _, err := svc.Get(ctx, testutil.ProjectID, ""); return err },
		"download": func() error { _, _, err := svc.Download(ctx, testutil.ProjectID, ""); return err },
		"delete":   func() error { _, err := svc.Delete(ctx, testutil.ProjectID, " "); return err },
		"metadata": func() error { _, err := svc.Metadata(ctx, testutil.ProjectID, ""); return err },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			var verr *validation.Error
			require.ErrorAs(t, call(), &verr)
			assert.Equal(t, []string{"file_id"}, verr.Fields())
		})
	}
	assert.Empty(t, m.Requests())
}
