package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey(Object{Resource: ResourceImage, Folder: "/songs/abc/", Filename: "Cover.PNG"})
	assert.True(t, strings.HasPrefix(key, "songs/abc/image-"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	other := ObjectKey(Object{Resource: ResourceImage, Folder: "songs/abc", Filename: "Cover.PNG"})
	assert.NotEqual(t, key, other)

	assert.True(t, strings.HasPrefix(ObjectKey(Object{Folder: "x"}), "x/auto-"))
}

func TestS3UploaderPutsObject(t *testing.T) {
	fake := &fakeS3{}
	up := NewS3Uploader(fake, "media", "https://cdn.example.com/")

	url, err := up.Upload(context.Background(), Object{
		Resource: ResourceAuto,
		Folder:   "songs/123",
		Filename: "track.mp3",
		Size:     5,
		Body:     strings.NewReader("audio"),
	})
	require.NoError(t, err)
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "media", aws.ToString(in.Bucket))
	assert.True(t, strings.HasPrefix(aws.ToString(in.Key), "songs/123/auto-"))
	assert.Equal(t, "application/octet-stream", aws.ToString(in.ContentType))
	assert.Equal(t, int64(5), aws.ToInt64(in.ContentLength))
	assert.Equal(t, "audio", fake.bodies[0])
	assert.Equal(t, "https://cdn.example.com/"+aws.ToString(in.Key), url)
}

func TestS3UploaderWrapsErrors(t *testing.T) {
	boom := errors.New("boom")
	up := NewS3Uploader(&fakeS3{err: boom}, "media", "https://cdn.example.com")

	_, err := up.Upload(context.Background(), Object{Folder: "songs/1", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com", PublicBaseURL("https://cdn.example.com/", "http://minio:9000", "media", "eu-west-1"))
	assert.Equal(t, "http://minio:9000/media", PublicBaseURL("", "http://minio:9000/", "media", "eu-west-1"))
	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com", PublicBaseURL("", "", "media", "eu-west-1"))
}

func TestMemoryUploader(t *testing.T) {
	up := NewMemoryUploader()

	url, err := up.Upload(context.Background(), Object{Resource: ResourceImage, Folder: "songs/1", Filename: "a.jpg", Body: strings.NewReader("img")})
	require.NoError(t, err)
	data, ok := up.Object(url)
	require.True(t, ok)
	assert.Equal(t, "img", string(data))
	assert.Equal(t, 1, up.Len())

	up.FailWith(errors.New("offline"))
	_, err = up.Upload(context.Background(), Object{Body: strings.NewReader("x")})
	assert.Error(t, err)
}
