package api

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/vidhyutcables/player-card/internal/archive"
	"github.com/vidhyutcables/player-card/internal/card"
	"github.com/vidhyutcables/player-card/internal/roster"
	"github.com/vidhyutcables/player-card/internal/scout"
	"github.com/vidhyutcables/player-card/internal/util"
)

// Server wires the handlers to the compositor and the optional scout
// narrative service.
type Server struct {
	Compositor *card.Compositor
	Scout      *scout.Client
}

// health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// rosterHandler ingests a roster CSV (multipart "file" upload, or JSON
// {"url": ...} to fetch one) and returns the parsed, defaulted records.
func (s *Server) rosterHandler(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req struct {
			URL string `json:"url"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		b, err := util.GetBytes(req.URL)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		s.respondRoster(c, bytes.NewReader(b))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing roster file"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	s.respondRoster(c, f)
}

func (s *Server) respondRoster(c *gin.Context, r io.Reader) {
	players, err := roster.LoadCSV(r)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(players), "players": players})
}

type renderRequest struct {
	Players     []roster.Player `json:"players"`
	OrgPortrait string          `json:"org_portrait"`
	Logo        string          `json:"logo"`
	BatchName   string          `json:"batch_name"`
}

// renderCardHandler renders a single player and returns the PNG directly.
func (s *Server) renderCardHandler(c *gin.Context) {
	var req struct {
		Player      roster.Player `json:"player"`
		OrgPortrait string        `json:"org_portrait"`
		Logo        string        `json:"logo"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrgPortrait == "" || req.Logo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": card.ErrMissingSharedAssets.Error()})
		return
	}
	players := []roster.Player{req.Player}
	roster.AssignIDs(players)

	rc, err := s.Compositor.Compose(c.Request.Context(), players[0], req.OrgPortrait, req.Logo)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", rc.PNG)
}

// renderBatchHandler composes every player sequentially and returns the
// batch as a ZIP. Per-card failures are logged and skipped so one bad card
// never takes down the rest of the batch.
func (s *Server) renderBatchHandler(c *gin.Context) {
	var req renderRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.OrgPortrait == "" || req.Logo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": card.ErrMissingSharedAssets.Error()})
		return
	}
	if len(req.Players) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no players in batch"})
		return
	}
	roster.AssignIDs(req.Players)

	shared := card.SharedAssets{OrgPortraitRef: req.OrgPortrait, LogoRef: req.Logo}
	var cards []card.RenderedCard
	idx := -1
	err := s.Compositor.ComposeBatch(c.Request.Context(), req.Players, shared, func(rc card.RenderedCard, err error) error {
		idx++
		if err != nil {
			log.Println("batch:", err, "(skipping card)")
			return nil
		}
		if s.Scout.Enabled() {
			p := req.Players[idx]
			story, serr := s.Scout.Report(c.Request.Context(), p.Name, p.Role, p.BattingStyle, p.BowlingStyle, p.FormNumber)
			if serr != nil {
				log.Println("scout: report for", p.ID, "failed:", serr)
			} else {
				rc.Story = story
			}
		}
		cards = append(cards, rc)
		log.Printf("batch: composed %d/%d", len(cards), len(req.Players))
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	buf := new(bytes.Buffer)
	if err := archive.WriteZip(buf, req.BatchName, cards); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="cards.zip"`)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// maxQRSize caps the share-QR side length; the size query is
// caller-supplied and an unbounded value means an unbounded allocation.
const maxQRSize = 1024

// qrHandler returns a PNG QR for a share link to a finished batch.
func (s *Server) qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing text"})
		return
	}
	size := 400
	if v, err := strconv.Atoi(c.Query("size")); err == nil && v > 0 {
		size = v
	}
	if size > maxQRSize {
		size = maxQRSize
	}
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}
