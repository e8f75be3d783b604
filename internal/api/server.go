package api

import (
	"embed"
	"html/template"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/youruser/popmerge/internal/session"
)

//go:embed web/index.html
var webFS embed.FS

// Options configures a Server.
type Options struct {
	Sessions       *session.Store
	MergeInterval  time.Duration
	MergeBurst     int
	MaxUploadBytes int64
	PublicURL      string
	Language       language.Tag
	Logger         *slog.Logger
}

// Server serves the merge page and its JSON API.
type Server struct {
	sessions  *session.Store
	limiter   *rate.Limiter
	maxUpload int64
	publicURL string
	lang      language.Tag
	logger    *slog.Logger
}

func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	burst := opts.MergeBurst
	if burst < 1 {
		burst = 1
	}
	return &Server{
		sessions:  opts.Sessions,
		limiter:   rate.NewLimiter(rate.Every(opts.MergeInterval), burst),
		maxUpload: opts.MaxUploadBytes,
		publicURL: opts.PublicURL,
		lang:      opts.Language,
		logger:    logger,
	}
}

// Engine builds the gin engine with middleware and routes.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())
	r.MaxMultipartMemory = s.maxUpload
	r.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/index.html")))
	RegisterRoutes(r, s)
	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		level := slog.LevelInfo
		if c.Writer.Status() >= 500 {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		)
	}
}
