package service

import (
	"Prism/models"
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 最小的 1x1 无损 webp（RIFF 头 + VP8L 块）
var webpPayload = []byte{
	'R', 'I', 'F', 'F', 18, 0, 0, 0,
	'W', 'E', 'B', 'P',
	'V', 'P', '8', 'L', 5, 0, 0, 0,
	0x2f, 0x00, 0x00, 0x00, 0x00,
	0x00,
}

// 最小 mp4 头（ftyp box）
var mp4Payload = []byte{
	0x00, 0x00, 0x00, 0x1c, 'f', 't', 'y', 'p',
	'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00,
	'i', 's', 'o', 'm', 'i', 's', 'o', '2', 'm', 'p', '4', '1',
}

func TestDetectMediaWebp(t *testing.T) {
	require.Equal(t, "image/webp", http.DetectContentType(webpPayload))

	s := &MediaService{}
	mediaType, ext, err := s.detectMedia(bytes.NewReader(webpPayload))
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeImage, mediaType)
	assert.Equal(t, ".webp", ext)
}

func TestDetectMediaVideo(t *testing.T) {
	s := &MediaService{}
	mediaType, ext, err := s.detectMedia(bytes.NewReader(mp4Payload))
	require.NoError(t, err)
	assert.Equal(t, models.MediaTypeVideo, mediaType)
	assert.Equal(t, ".mp4", ext)
}

func TestDetectMediaRejectsUnknown(t *testing.T) {
	s := &MediaService{}
	_, _, err := s.detectMedia(bytes.NewReader([]byte("just some text")))
	assert.Error(t, err)
}

func TestDetectMediaRejectsFakeImage(t *testing.T) {
	// webp 的 MIME 头但块内容损坏，内容校验要拦下来
	broken := append([]byte{}, webpPayload...)
	broken[20] = 0x00 // VP8L 签名字节
	s := &MediaService{}
	_, _, err := s.detectMedia(bytes.NewReader(broken))
	assert.Error(t, err)
}
