// Package web serves the assembler and decoder over HTTP.
package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/net/trace"

	"badc0de.net/pkg/go-apng/apng"
	"badc0de.net/pkg/go-apng/chunk"
)

// DefaultMaxBodyBytes limits request bodies when NewHandler is passed 0.
const DefaultMaxBodyBytes = 32 << 20

type Handler struct {
	maxBodyBytes int64
}

// NewHandler constructs the web handler. Request bodies larger than
// maxBodyBytes are refused.
func NewHandler(maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{maxBodyBytes: maxBodyBytes}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.indexHandler).Methods(http.MethodGet)
	r.HandleFunc("/assemble", h.assembleHandler).Methods(http.MethodPost)
	r.HandleFunc("/unpack", h.unpackHandler).Methods(http.MethodPost)
	r.HandleFunc("/unpack/{idx:[0-9]+}", h.unpackFrameHandler).Methods(http.MethodPost)
}

func (h *Handler) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	figure.Write(w, figure.NewFigure("go-apng", "", true))
	fmt.Fprint(w, "\n"+
		"POST /assemble?plays=N&delay=num/den   multipart form, PNG files in field \"frame\"\n"+
		"POST /unpack                           APNG body, frames as JSON\n"+
		"POST /unpack/{idx}                     APNG body, frame idx as PNG\n")
}

// errorStatus maps errors from the apng package to HTTP statuses.
func errorStatus(err error) int {
	var de *apng.DimensionError
	switch {
	case errors.Is(err, apng.ErrNotAnimated):
		return http.StatusUnsupportedMediaType
	case apng.IsFormatError(err), errors.Is(err, apng.ErrNoFrames), errors.As(err, &de):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(w http.ResponseWriter, tr trace.Trace, status int, err error) {
	tr.LazyPrintf("%d: %v", status, err)
	tr.SetError()
	if status >= http.StatusInternalServerError {
		glog.Errorf("web: %v", err)
	} else {
		glog.V(1).Infof("web: %d: %v", status, err)
	}
	http.Error(w, err.Error(), status)
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "reading request body")
	}
	return b, nil
}

func (h *Handler) assembleHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.assemble", r.URL.Path)
	defer tr.Finish()

	opts := apng.DefaultOptions()
	if plays := r.URL.Query().Get("plays"); plays != "" {
		n, err := strconv.ParseUint(plays, 10, 32)
		if err != nil {
			fail(w, tr, http.StatusBadRequest, errors.Wrap(err, "plays not a number"))
			return
		}
		opts.NumPlays = uint32(n)
	}
	delay := apng.DefaultDelay
	if d := r.URL.Query().Get("delay"); d != "" {
		var err error
		if delay, err = apng.ParseDelay(d); err != nil {
			fail(w, tr, http.StatusBadRequest, err)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(h.maxBodyBytes); err != nil {
		fail(w, tr, http.StatusBadRequest, errors.Wrap(err, "parsing multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["frame"]
	images := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			fail(w, tr, http.StatusBadRequest, errors.Wrapf(err, "opening %q", fh.Filename))
			return
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			fail(w, tr, http.StatusBadRequest, errors.Wrapf(err, "reading %q", fh.Filename))
			return
		}
		images = append(images, b)
	}
	opts.Delays = make([]apng.Delay, len(images))
	for i := range opts.Delays {
		opts.Delays[i] = delay
	}
	tr.LazyPrintf("%d frames, %d plays, delay %v", len(images), opts.NumPlays, delay)

	out, err := apng.Assemble(images, opts)
	if err != nil {
		fail(w, tr, errorStatus(err), err)
		return
	}
	tr.LazyPrintf("assembled %d bytes", len(out))

	w.Header().Set("Content-Type", apng.MediaType)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}

// FrameInfo describes one frame in the /unpack response.
type FrameInfo struct {
	Seq       uint32 `json:"seq"`
	Width     uint32 `json:"width"`
	Height    uint32 `json:"height"`
	XOffset   uint32 `json:"x_offset"`
	YOffset   uint32 `json:"y_offset"`
	DelayMS   int64  `json:"delay_ms"`
	DisposeOp string `json:"dispose_op"`
	BlendOp   string `json:"blend_op"`
	DataURL   string `json:"data_url"`
}

// AnimationInfo is the /unpack response.
type AnimationInfo struct {
	Width      uint32      `json:"width"`
	Height     uint32      `json:"height"`
	NumFrames  uint32      `json:"num_frames"`
	NumPlays   uint32      `json:"num_plays"`
	PlayTimeMS int64       `json:"play_time_ms"`
	Frames     []FrameInfo `json:"frames"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, tr trace.Trace) ([]byte, *apng.Animation, bool) {
	body, err := h.readBody(w, r)
	if err != nil {
		fail(w, tr, http.StatusBadRequest, err)
		return nil, nil, false
	}
	a, err := apng.DecodeAnimation(body)
	if err != nil {
		fail(w, tr, errorStatus(err), err)
		return nil, nil, false
	}
	tr.LazyPrintf("decoded %d bytes into %d frames", len(body), len(a.Frames))
	return body, a, true
}

func (h *Handler) unpackHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.unpack", r.URL.Path)
	defer tr.Finish()

	_, a, ok := h.decode(w, r, tr)
	if !ok {
		return
	}

	info := AnimationInfo{
		Width:      a.Width,
		Height:     a.Height,
		NumFrames:  a.NumFrames,
		NumPlays:   a.NumPlays,
		PlayTimeMS: int64(a.PlayTime / time.Millisecond),
		Frames:     make([]FrameInfo, len(a.Frames)),
	}
	for i, f := range a.Frames {
		img, err := a.Image(i)
		if err != nil {
			fail(w, tr, http.StatusInternalServerError, err)
			return
		}
		byt, err := dataurl.New(img, "image/png").MarshalText()
		if err != nil {
			fail(w, tr, http.StatusInternalServerError, errors.Wrap(err, "failed to encode data url"))
			return
		}
		info.Frames[i] = FrameInfo{
			Seq:       f.SequenceNumber,
			Width:     f.Width,
			Height:    f.Height,
			XOffset:   f.XOffset,
			YOffset:   f.YOffset,
			DelayMS:   int64(f.Delay / time.Millisecond),
			DisposeOp: f.DisposeOp.String(),
			BlendOp:   f.BlendOp.String(),
			DataURL:   string(byt),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(info); err != nil {
		glog.Errorf("web: writing unpack response: %v", err)
	}
}

func (h *Handler) unpackFrameHandler(w http.ResponseWriter, r *http.Request) {
	tr := trace.New("web.unpack", r.URL.Path)
	defer tr.Finish()

	idx, err := strconv.Atoi(mux.Vars(r)["idx"])
	if err != nil {
		fail(w, tr, http.StatusBadRequest, errors.New("idx not a number"))
		return
	}

	body, a, ok := h.decode(w, r, tr)
	if !ok {
		return
	}
	if idx >= len(a.Frames) {
		fail(w, tr, http.StatusNotFound, errors.Errorf("frame %d not found; animation has %d frames", idx, len(a.Frames)))
		return
	}

	generation := 1 // bump if the way we generate it changes
	etag := fmt.Sprintf(`"frame:%d:%08x:%d"`, generation, chunk.Checksum(body, 0, len(body)), idx)
	if r.Header.Get("If-None-Match") == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	img, err := a.Image(idx)
	if err != nil {
		fail(w, tr, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("ETag", etag)
	w.WriteHeader(http.StatusOK)
	w.Write(img)
}
