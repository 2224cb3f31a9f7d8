package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/arcanalog/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown 把条目随笔渲染成净化后的 HTML
func renderMarkdown(source string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		// 渲染失败不吞内容，降级为纯文本
		return sanitizer.Sanitize(source)
	}
	return sanitizer.Sanitize(buf.String())
}

// GetSharedEntry 通过对外 UUID 返回分享视图，随笔按 Markdown 渲染。
// 该路由无需登录，但只暴露条目内容本身，不含账号信息。
func (a *API) GetSharedEntry(c *gin.Context) {
	entry, err := a.journal.GetByPublicID(c.Param("publicId"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load entry")
		return
	}

	response := toEntryResponse(entry)
	response.ID = 0 // 内部主键不外露

	c.JSON(http.StatusOK, gin.H{
		"entry":     response,
		"note_html": renderMarkdown(entry.Note),
	})
}
