package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fontContentTypes lists the extensions the endpoint serves. Anything else
// is rejected before the file system is touched.
var fontContentTypes = map[string]string{
	".woff2": "font/woff2",
	".woff":  "font/woff",
	".ttf":   "font/ttf",
}

// FontsHandler serves font files from a single directory.
type FontsHandler struct {
	fontDir string
	logger  *zap.Logger
}

// NewFontsHandler creates a fonts handler rooted at fontDir.
func NewFontsHandler(fontDir string) *FontsHandler {
	return &FontsHandler{
		fontDir: fontDir,
		logger:  zap.L(),
	}
}

// GetFont handles GET /fonts/*filename. The route captures the remainder of
// the path, so traversal attempts land here and are rejected before any path
// resolution happens.
func (h *FontsHandler) GetFont(c *gin.Context) {
	filename := strings.TrimPrefix(c.Param("filename"), "/")

	if strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}
	contentType, ok := fontContentTypes[filepath.Ext(filename)]
	if !ok {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	baseDir, err := canonicalize(h.fontDir)
	if err != nil {
		h.logger.Error("resolving font directory failed",
			zap.String("font_dir", h.fontDir),
			zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	fontPath, err := canonicalize(filepath.Join(baseDir, filename))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	// Symlinks are resolved by now, so a prefix mismatch means the name
	// escapes the font directory.
	if fontPath != baseDir && !strings.HasPrefix(fontPath, baseDir+string(os.PathSeparator)) {
		h.logger.Warn("font path escapes font directory",
			zap.String("filename", filename),
			zap.String("resolved", fontPath))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		h.logger.Error("reading font file failed",
			zap.String("path", fontPath),
			zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.Data(http.StatusOK, contentType, fontData)
}

// canonicalize resolves path to an absolute form with all symlinks expanded.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
