package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	imagepkg "github.com/youruser/popmerge/internal/image"
	"github.com/youruser/popmerge/internal/merge"
)

type sideView struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message,omitempty"`
	Name       string `json:"name,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
}

type sessionView struct {
	ID       string      `json:"id"`
	State    merge.State `json:"state"`
	CanMerge bool        `json:"can_merge"`
	Status   string      `json:"status"`
	Filename string      `json:"filename,omitempty"`
	Left     sideView    `json:"left"`
	Right    sideView    `json:"right"`
}

func (s *Server) requestLanguage(c *gin.Context) language.Tag {
	return merge.MatchLanguage(c.GetHeader("Accept-Language"), s.lang)
}

func (s *Server) view(c *gin.Context, id string, snap merge.Snapshot) sessionView {
	tag := s.requestLanguage(c)
	side := func(name string, p merge.Preview) sideView {
		if !p.Valid() {
			return sideView{Message: p.Placeholder.Localize(tag)}
		}
		return sideView{
			Valid:      true,
			Name:       p.Image.Name,
			PreviewURL: fmt.Sprintf("/api/sessions/%s/sides/%s/preview", id, name),
		}
	}
	return sessionView{
		ID:       id,
		State:    snap.State,
		CanMerge: snap.CanMerge,
		Status:   snap.Status.Localize(tag),
		Filename: snap.Filename,
		Left:     side("left", snap.Left),
		Right:    side("right", snap.Right),
	}
}

func (s *Server) index(c *gin.Context) {
	tag := s.requestLanguage(c)
	base, _ := tag.Base()
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Lang":    base.String(),
		"Title":   merge.LabelTitle.Localize(tag),
		"Left":    merge.LabelLeft.Localize(tag),
		"Right":   merge.LabelRight.Localize(tag),
		"Merge":   merge.LabelMerge.Localize(tag),
		"Access":  merge.LabelAccess.Localize(tag),
		"NoImage": merge.MsgNoImage.Localize(tag),
		"Merging": merge.MsgMerging.Localize(tag),
		"Failed":  merge.MsgFailed.Localize(tag),
	})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.sessions.Len()})
}

// qr returns a PNG QR code of the page URL, or of the "text" query param.
func (s *Server) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		text = s.pageURL(c)
	}
	size := 256
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	b, err := imagepkg.AccessQRPNG(text, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (s *Server) pageURL(c *gin.Context) string {
	if s.publicURL != "" {
		return s.publicURL + "/"
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/"
}

func (s *Server) createSession(c *gin.Context) {
	id, o := s.sessions.Create()
	s.logger.Debug("session created", "session_id", id)
	c.JSON(http.StatusCreated, s.view(c, id, o.Snapshot()))
}

// lookup resolves :id or writes 404.
func (s *Server) lookup(c *gin.Context) (string, *merge.Orchestrator, bool) {
	id := c.Param("id")
	o, ok := s.sessions.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return "", nil, false
	}
	return id, o, true
}

func (s *Server) lookupSide(c *gin.Context) (string, *merge.Orchestrator, merge.Side, bool) {
	side, err := merge.ParseSide(c.Param("side"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, 0, false
	}
	id, o, ok := s.lookup(c)
	return id, o, side, ok
}

func (s *Server) getSession(c *gin.Context) {
	id, o, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.view(c, id, o.Snapshot()))
}

func (s *Server) deleteSession(c *gin.Context) {
	s.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// selectFile replaces one side with the uploaded "file" field. Only the
// first file is used when several are sent; no file clears the side.
func (s *Server) selectFile(c *gin.Context) {
	id, o, side, ok := s.lookupSide(c)
	if !ok {
		return
	}

	// Leave room for the multipart framing around the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload+1<<20)
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected a multipart upload: " + err.Error()})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusOK, s.view(c, id, o.Select(side, nil)))
		return
	}
	fh := files[0]
	if fh.Size > s.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file: " + err.Error()})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file: " + err.Error()})
		return
	}

	snap := o.Select(side, &merge.File{
		Name:      fh.Filename,
		MediaType: fh.Header.Get("Content-Type"),
		Data:      data,
	})
	s.logger.Info("file selected", "session_id", id, "side", side, "name", fh.Filename, "can_merge", snap.CanMerge)
	c.JSON(http.StatusOK, s.view(c, id, snap))
}

func (s *Server) clearFile(c *gin.Context) {
	id, o, side, ok := s.lookupSide(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.view(c, id, o.Select(side, nil)))
}

// passthroughTypes are raster formats browsers may render but the server
// cannot decode. Only these are served back as uploaded.
var passthroughTypes = map[string]bool{
	"image/avif": true,
	"image/heic": true,
	"image/heif": true,
}

// preview serves a thumbnail of one side. Data that does not decode is
// served as uploaded only for passthroughTypes.
func (s *Server) preview(c *gin.Context) {
	_, o, side, ok := s.lookupSide(c)
	if !ok {
		return
	}
	snap := o.Snapshot()
	p := snap.Left
	if side == merge.Right {
		p = snap.Right
	}
	if !p.Valid() {
		c.JSON(http.StatusNotFound, gin.H{"error": p.Placeholder.Localize(s.requestLanguage(c))})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("X-Content-Type-Options", "nosniff")
	thumb, err := imagepkg.Thumbnail(c.Request.Context(), p.Image.Data, imagepkg.ThumbnailMaxSide)
	if err != nil {
		s.logger.Debug("preview thumbnail failed", "side", side, "error", err)
		mediaType, _, _ := mime.ParseMediaType(p.Image.MediaType)
		if passthroughTypes[mediaType] {
			c.Data(http.StatusOK, mediaType, p.Image.Data)
			return
		}
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": merge.MsgFailed.Localize(s.requestLanguage(c))})
		return
	}
	c.Data(http.StatusOK, "image/jpeg", thumb)
}

// responseSaver streams the artifact as an attachment download.
type responseSaver struct {
	c *gin.Context
}

func (r responseSaver) Save(_ context.Context, filename string, a *imagepkg.Artifact) error {
	h := r.c.Writer.Header()
	h.Set("Content-Type", "image/jpeg")
	h.Set("Content-Length", strconv.Itoa(a.Len()))
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("X-Download-Filename", url.PathEscape(filename))
	h.Set("Cache-Control", "no-store")
	r.c.Writer.WriteHeader(http.StatusOK)
	_, err := r.c.Writer.Write(a.Bytes())
	return err
}

func (s *Server) mergeImages(c *gin.Context) {
	id, o, ok := s.lookup(c)
	if !ok {
		return
	}
	// Requests that cannot start a merge are answered without spending a token.
	if snap := o.Snapshot(); !snap.CanMerge {
		c.JSON(http.StatusConflict, s.view(c, id, snap))
		return
	}
	if err := s.limiter.Wait(c.Request.Context()); err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}

	err := o.Merge(c.Request.Context(), responseSaver{c: c})
	if c.Writer.Written() {
		return
	}
	switch {
	case err == nil:
		// The saver wrote the response.
	case errors.Is(err, merge.ErrNotReady), errors.Is(err, merge.ErrMergeInProgress):
		c.JSON(http.StatusConflict, s.view(c, id, o.Snapshot()))
	default:
		c.JSON(http.StatusInternalServerError, s.view(c, id, o.Snapshot()))
	}
}
