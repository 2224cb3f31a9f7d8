package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/arcanalog/internal/db"
	"github.com/arcanalog/internal/journey"
	"github.com/arcanalog/internal/service"
	"github.com/gin-gonic/gin"
)

type cardPayload struct {
	Name        string `json:"name"`
	Orientation string `json:"orientation"`
}

type entryPayload struct {
	Spread   string        `json:"spread"`
	Context  string        `json:"context"`
	Question string        `json:"question"`
	Note     string        `json:"note"`
	ReadAt   string        `json:"read_at"`
	TS       int64         `json:"ts"`
	Cards    []cardPayload `json:"cards"`
	Themes   []string      `json:"themes"`
}

type cardResponse struct {
	Name        string `json:"name"`
	Orientation string `json:"orientation"`
}

type entryResponse struct {
	ID        uint           `json:"id,omitempty"`
	PublicID  string         `json:"public_id"`
	Spread    string         `json:"spread,omitempty"`
	Context   string         `json:"context,omitempty"`
	Question  string         `json:"question,omitempty"`
	Note      string         `json:"note,omitempty"`
	ReadAt    string         `json:"read_at,omitempty"`
	TS        int64          `json:"ts,omitempty"`
	Cards     []cardResponse `json:"cards"`
	Themes    []string       `json:"themes"`
	CreatedAt string         `json:"created_at"`
}

func toEntryResponse(entry *db.Entry) entryResponse {
	cards := make([]cardResponse, 0, len(entry.Cards))
	for _, card := range entry.Cards {
		cards = append(cards, cardResponse{Name: card.Name, Orientation: card.Orientation})
	}

	themes := make([]string, 0, len(entry.Themes))
	for _, theme := range entry.Themes {
		themes = append(themes, theme.Label)
	}

	readAt := ""
	if entry.ReadAt != nil {
		readAt = entry.ReadAt.Format(time.RFC3339)
	}

	return entryResponse{
		ID:        entry.ID,
		PublicID:  entry.PublicID,
		Spread:    entry.Spread,
		Context:   entry.Context,
		Question:  entry.Question,
		Note:      entry.Note,
		ReadAt:    readAt,
		TS:        entry.ClientTS,
		Cards:     cards,
		Themes:    themes,
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}

func toEntryInput(payload entryPayload) service.EntryInput {
	cards := make([]service.CardInput, 0, len(payload.Cards))
	for _, card := range payload.Cards {
		cards = append(cards, service.CardInput{Name: card.Name, Orientation: card.Orientation})
	}

	input := service.EntryInput{
		Spread:   payload.Spread,
		Context:  payload.Context,
		Question: payload.Question,
		Note:     payload.Note,
		ClientTS: payload.TS,
		Cards:    cards,
		Themes:   payload.Themes,
	}

	if payload.ReadAt != "" {
		if readAt, err := time.Parse(time.RFC3339, payload.ReadAt); err == nil {
			input.ReadAt = &readAt
		}
	}

	return input
}

// CreateEntry 新建日志条目
func (a *API) CreateEntry(c *gin.Context) {
	var payload entryPayload
	if !bindJSON(c, &payload, "invalid entry payload") {
		return
	}

	userID := currentUserID(c)
	entry, err := a.journal.Create(userID, toEntryInput(payload))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to create entry")
		return
	}

	a.journeys.Invalidate(userID)
	c.JSON(http.StatusCreated, toEntryResponse(entry))
}

// GetEntries 返回分页条目列表
func (a *API) GetEntries(c *gin.Context) {
	filter := service.EntryFilter{
		Context:   c.Query("context"),
		Search:    c.Query("search"),
		StartDate: parseDateQuery(c, "start"),
		EndDate:   parseDateQuery(c, "end"),
	}
	if page, err := parseUintParamValue(c.Query("page")); err == nil {
		filter.Page = int(page)
	}
	if perPage, err := parseUintParamValue(c.Query("per_page")); err == nil {
		filter.PerPage = int(perPage)
	}

	result, err := a.journal.List(currentUserID(c), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to list entries")
		return
	}

	entries := make([]entryResponse, 0, len(result.Entries))
	for i := range result.Entries {
		entries = append(entries, toEntryResponse(&result.Entries[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":     entries,
		"total":       result.Total,
		"total_pages": result.TotalPages,
		"page":        result.Page,
		"per_page":    result.PerPage,
	})
}

// GetEntry 返回单个条目
func (a *API) GetEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.journal.Get(currentUserID(c), id)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load entry")
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// UpdateEntry 更新条目
func (a *API) UpdateEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var payload entryPayload
	if !bindJSON(c, &payload, "invalid entry payload") {
		return
	}

	userID := currentUserID(c)
	entry, err := a.journal.Update(userID, id, toEntryInput(payload))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to update entry")
		return
	}

	a.journeys.Invalidate(userID)
	c.JSON(http.StatusOK, toEntryResponse(entry))
}

// DeleteEntry 删除条目
func (a *API) DeleteEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID := currentUserID(c)
	if err := a.journal.Delete(userID, id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to delete entry")
		return
	}

	a.journeys.Invalidate(userID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// RecordEntryPatterns 接收上游知识图谱并异步记录模式出现。
// 立即返回 202：模式记录是尽力而为的遥测，结果不影响保存流程。
func (a *API) RecordEntryPatterns(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var graph journey.Graph
	if !bindJSON(c, &graph, "invalid pattern graph payload") {
		return
	}

	userID := currentUserID(c)
	entry, err := a.journal.Get(userID, id)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "entry not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "failed to load entry")
		return
	}

	a.patterns.RecordAsync(userID, entry.PublicID, graph, time.Now())
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
