package session

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/vincent-petithory/dataurl"
)

type State string

const (
	StateIdle          State = "idle"
	StateImageSelected State = "imageSelected"
	StateGenerating    State = "generating"
	StateResultReady   State = "resultReady"
	StateErrorShown    State = "errorShown"
)

const (
	MessageMissingImage = "Vui lòng tải lên ảnh khuôn mặt trước"
	MessageFailed       = "Có lỗi xảy ra"
)

var (
	ErrMissingImage = errors.New(MessageMissingImage)
	ErrBusy         = errors.New("generation already in progress")
	ErrNoResult     = errors.New("no generated image")
	ErrReset        = errors.New("session was reset during generation")
)

// Generator turns a face image data URL into a generated image URL.
type Generator interface {
	Generate(ctx context.Context, faceImage string) (string, error)
}

type GeneratorFunc func(ctx context.Context, faceImage string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, faceImage string) (string, error) {
	return f(ctx, faceImage)
}

// Downloader copies the image behind a result URL into w.
type Downloader interface {
	Download(ctx context.Context, url string, w io.Writer) error
}

// Session holds the transient state of one user: the selected face image, the
// generated result and the last error. It allows at most one generation in
// flight; a result that arrives after Reset is dropped.
type Session struct {
	generator Generator

	mu sync.Mutex

	state State

	faceImage string
	result    string
	message   string

	// incremented on every Reset and Generate so stale responses can be detected
	epoch uint64
}

type View struct {
	State State

	FaceImage string
	Result    string
	Error     string

	CanGenerate bool
	CanReset    bool
}

func New(generator Generator) *Session {
	return &Session{
		generator: generator,
		state:     StateIdle,
	}
}

// Select decodes the chosen file into a data URL and holds it in memory.
func (s *Session) Select(name, contentType string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty file")
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(name))
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	mediaType, _, _ := mime.ParseMediaType(contentType)

	if !strings.HasPrefix(mediaType, "image/") {
		return errors.New("unsupported file type: " + contentType)
	}

	image := dataurl.New(data, mediaType).String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateGenerating {
		return ErrBusy
	}

	s.faceImage = image
	s.message = ""
	s.state = StateImageSelected

	return nil
}

func (s *Session) CanGenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.canGenerate()
}

func (s *Session) canGenerate() bool {
	return s.faceImage != "" && s.state != StateGenerating
}

// Generate requests a portrait for the selected image and blocks until the
// result or an error is available.
func (s *Session) Generate(ctx context.Context) error {
	s.mu.Lock()

	if s.state == StateGenerating {
		s.mu.Unlock()
		return ErrBusy
	}

	if s.faceImage == "" {
		s.message = MessageMissingImage
		s.state = StateErrorShown

		s.mu.Unlock()
		return ErrMissingImage
	}

	s.epoch++

	epoch := s.epoch
	image := s.faceImage

	s.result = ""
	s.message = ""
	s.state = StateGenerating

	s.mu.Unlock()

	result, err := s.generator.Generate(ctx, image)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch {
		return ErrReset
	}

	if err != nil {
		message := err.Error()

		if message == "" {
			message = MessageFailed
		}

		s.message = message
		s.state = StateErrorShown

		return err
	}

	s.result = result
	s.state = StateResultReady

	return nil
}

// Reset clears everything and returns to idle, from any state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++

	s.faceImage = ""
	s.result = ""
	s.message = ""
	s.state = StateIdle
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		State: s.state,

		FaceImage: s.faceImage,
		Result:    s.result,
		Error:     s.message,

		CanGenerate: s.canGenerate(),
		CanReset:    s.faceImage != "" || s.result != "",
	}
}

// Download writes the generated image, the same one the result URL points to, to w.
func (s *Session) Download(ctx context.Context, d Downloader, w io.Writer) error {
	result := s.View().Result

	if result == "" {
		return ErrNoResult
	}

	return d.Download(ctx, result, w)
}

// DownloadName is the file name offered for the generated image.
func (s *Session) DownloadName() string {
	ext := ".png"

	if result := s.View().Result; result != "" && !strings.HasPrefix(result, "data:") {
		if val := path.Ext(strings.SplitN(result, "?", 2)[0]); val != "" {
			ext = val
		}
	}

	return "vietnamese-portrait" + ext
}
