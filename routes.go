package main

import (
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akshaysalvi/portfolio/internal/avatar"
	"github.com/akshaysalvi/portfolio/internal/metrics"
	"github.com/akshaysalvi/portfolio/internal/portrait"
	"github.com/akshaysalvi/portfolio/internal/site"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const maxAvatarLabel = 8

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.log), requestMetrics())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.StaticFS("/static", http.FS(mustSub(staticFS, "static")))

	// Home page route
	r.GET("/", func(c *gin.Context) {
		s.renderSection(c, site.About)
	})

	// Navigation; HTMX requests only get the section body
	r.GET("/section/:name", func(c *gin.Context) {
		s.renderSection(c, site.ParseSection(c.Param("name")))
	})

	// Photo or generated placeholder, whichever exists
	r.GET("/profile-image", func(c *gin.Context) {
		pic, err := s.portraits.Resolve()
		if err != nil || !pic.IsFile() {
			c.JSON(http.StatusNotFound, gin.H{"error": "no profile image on disk"})
			return
		}
		c.Header("Content-Type", pic.ContentType)
		c.File(pic.Path)
	})

	r.GET("/avatar", s.handleAvatar)

	// Contact form: presence check only, nothing is sent or stored
	r.POST("/contact", func(c *gin.Context) {
		var form site.ContactForm
		if err := c.ShouldBind(&form); err != nil {
			c.String(http.StatusBadRequest, "invalid form submission")
			return
		}

		res := site.ValidateContact(form)
		result := "invalid"
		if res.OK {
			result = "ok"
			res.Form = site.ContactForm{}
		}
		metrics.ContactSubmissionsTotal.WithLabelValues(result).Inc()

		c.HTML(http.StatusOK, "contact-form", res)
	})

	r.GET("/api/skills/proficiency", func(c *gin.Context) {
		rows, err := s.catalog.Proficiency(c.Request.Context())
		if err != nil {
			s.log.Error().Err(err).Msg("loading proficiency")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load skills"})
			return
		}
		c.JSON(http.StatusOK, site.ProficiencyChart(rows))
	})

	r.GET("/healthz", func(c *gin.Context) {
		if err := s.catalog.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func (s *server) renderSection(c *gin.Context, section site.Section) {
	pic, err := s.portraits.Resolve()
	if err != nil {
		s.log.Warn().Err(err).Msg("no profile image provider succeeded")
		pic = portrait.Portrait{Kind: portrait.KindInline, Initials: s.profile.Initials, Background: s.cfg.AvatarBackground}
	}

	page, err := site.Render(c.Request.Context(), s.catalog, s.profile, section, pic)
	if err != nil {
		s.log.Error().Err(err).Str("section", section.Slug()).Msg("rendering section")
		c.String(http.StatusInternalServerError, "Failed to load this section")
		return
	}

	if c.GetHeader("HX-Request") == "true" {
		c.HTML(http.StatusOK, "section", page)
		return
	}
	c.HTML(http.StatusOK, "index", page)
}

type avatarQuery struct {
	Size  int    `form:"size" binding:"omitempty,min=1"`
	BG    string `form:"bg"`
	FG    string `form:"fg"`
	Shape string `form:"shape" binding:"omitempty,oneof=square circle"`
}

// handleAvatar renders an avatar on every request; results are not cached.
func (s *server) handleAvatar(c *gin.Context) {
	var q avatarQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := s.cfg.AvatarRequest()
	if label, ok := c.GetQuery("label"); ok {
		if utf8.RuneCountInString(label) > maxAvatarLabel {
			c.JSON(http.StatusBadRequest, gin.H{"error": "label is limited to 8 characters"})
			return
		}
		req.Label = label
	}
	if q.Size != 0 {
		if q.Size > s.cfg.AvatarMaxSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size exceeds AVATAR_MAX_SIZE"})
			return
		}
		req.Size = q.Size
	}
	if q.Shape != "" {
		req.Shape = avatar.ParseShape(q.Shape)
	}
	var err error
	if q.BG != "" {
		if req.Background, err = avatar.ParseHex(q.BG); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if q.FG != "" {
		if req.Foreground, err = avatar.ParseHex(q.FG); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	img, err := s.avatars.Generate(req)
	metrics.ObserveAvatar(img, err)
	if err != nil {
		status := http.StatusInternalServerError
		var genErr *avatar.GenerationError
		if errors.As(err, &genErr) && genErr.Stage != avatar.StageEncode {
			status = http.StatusBadRequest
		}
		s.log.Error().Err(err).Int("size", req.Size).Msg("generating avatar")
		c.JSON(status, gin.H{"error": "could not generate avatar"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, avatar.ContentType, img.Data)
}
